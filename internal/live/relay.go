package live

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tamim-18/medical-healthcare/internal/language"
	"github.com/tamim-18/medical-healthcare/internal/session"
)

// wsMessage is the frame format spoken on the live transcript socket.
// Client types: "auth", "text", "languages", "swap", "bye".
// Server types: "translation", "state", "notice", "error".
type wsMessage struct {
	Type     string         `json:"type"`
	Password string         `json:"password,omitempty"`
	Text     string         `json:"text,omitempty"`
	Source   string         `json:"source,omitempty"`
	Target   string         `json:"target,omitempty"`
	Message  string         `json:"message,omitempty"`
	State    *session.State `json:"state,omitempty"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Allow any origin for demo use; restrict in production
		return true
	},
}

// Handler owns one translation session per live socket. The browser performs
// speech recognition locally and streams the interim transcript here; the
// server debounces, translates, and pushes results back.
type Handler struct {
	translator   session.Translator
	authPassword string
	quiet        time.Duration
}

// NewHandler builds a live relay. quiet <= 0 selects the session default.
func NewHandler(tr session.Translator, authPassword string, quiet time.Duration) *Handler {
	return &Handler{translator: tr, authPassword: authPassword, quiet: quiet}
}

// ServeWebSocket upgrades the request and runs the session loop until the
// client says bye or the socket drops. The session and its notice channel are
// torn down with the connection.
func (h *Handler) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// Simple auth: Authorization: Bearer <pwd> or ?password=... or first
	// message type=auth
	if h.authPassword != "" && !authOK(r, h.authPassword) {
		mt, data, rerr := conn.ReadMessage()
		if rerr != nil || mt != websocket.TextMessage {
			_ = writeWS(conn, nil, wsMessage{Type: "error", Message: "auth required"})
			return
		}
		var m wsMessage
		if jerr := json.Unmarshal(data, &m); jerr != nil || strings.ToLower(m.Type) != "auth" || m.Password != h.authPassword {
			_ = writeWS(conn, nil, wsMessage{Type: "error", Message: "unauthorized"})
			return
		}
	}

	source, target := defaultPair(r)

	// writes come from three places (read loop, result callback, notice
	// pump), so serialize them
	writeMu := &writeLock{}
	sess := session.NewSession(h.translator, source, target, h.quiet, func(st session.State) {
		_ = writeWS(conn, writeMu, wsMessage{
			Type:   "translation",
			Text:   st.TranslatedText,
			Source: st.SourceLanguage,
			Target: st.TargetLanguage,
		})
	})
	defer sess.Close()
	log.Printf("[%s] live session open (%s -> %s)", sess.ID(), source, target)

	go func() {
		for n := range sess.Notices() {
			_ = writeWS(conn, writeMu, wsMessage{Type: "notice", Message: n.Message})
		}
	}()

	for {
		mt, data, rerr := conn.ReadMessage()
		if rerr != nil {
			log.Printf("[%s] live session closed: %v", sess.ID(), rerr)
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		var m wsMessage
		if json.Unmarshal(data, &m) != nil {
			continue
		}
		switch strings.ToLower(m.Type) {
		case "text":
			sess.SetText(m.Text)
		case "languages":
			if !language.Supported(m.Source) || !language.Supported(m.Target) {
				_ = writeWS(conn, writeMu, wsMessage{Type: "error", Message: "unsupported language"})
				continue
			}
			sess.SetLanguages(m.Source, m.Target)
		case "swap":
			st := sess.Swap()
			_ = writeWS(conn, writeMu, wsMessage{Type: "state", State: &st})
		case "bye":
			return
		}
	}
}

// defaultPair reads the initial language pair from the query string, falling
// back to English -> Spanish.
func defaultPair(r *http.Request) (string, string) {
	source, target := "en-US", "es-ES"
	if v := r.URL.Query().Get("source"); language.Supported(v) {
		source = v
	}
	if v := r.URL.Query().Get("target"); language.Supported(v) {
		target = v
	}
	return source, target
}

// authOK accepts the expected password via ?password=, X-Auth-Token, or an
// Authorization bearer header.
func authOK(r *http.Request, expected string) bool {
	if expected == "" {
		return true
	}
	if r == nil {
		return false
	}
	if r.URL.Query().Get("password") == expected {
		return true
	}
	if r.Header.Get("X-Auth-Token") == expected {
		return true
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") && strings.TrimSpace(auth[7:]) == expected {
		return true
	}
	return false
}

type writeLock struct{ mu sync.Mutex }

func writeWS(conn *websocket.Conn, l *writeLock, msg wsMessage) error {
	if l != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	return conn.WriteJSON(msg)
}
