package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tamim-18/medical-healthcare/internal/gateway"
	"github.com/tamim-18/medical-healthcare/internal/language"
	"github.com/tamim-18/medical-healthcare/internal/live"
	"github.com/tamim-18/medical-healthcare/internal/storage"
	"github.com/tamim-18/medical-healthcare/internal/tts"
)

// maxReportBytes caps uploaded report size (images/PDFs).
const maxReportBytes = 10 << 20

// requestTimeout bounds one provider round trip from the HTTP layer.
const requestTimeout = 30 * time.Second

// Handlers wires the REST surface. Gateway may be nil when the provider key
// is not configured; affected routes then answer 503 instead of crashing.
type Handlers struct {
	Gateway gateway.Gateway
	Speech  tts.Synthesizer
	Archive storage.Archive
	Live    *live.Handler
}

func NewHandlers(gw gateway.Gateway, speech tts.Synthesizer, archive storage.Archive, liveHandler *live.Handler) Handlers {
	return Handlers{Gateway: gw, Speech: speech, Archive: archive, Live: liveHandler}
}

func (h Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/api/languages", h.languages)
	e.POST("/api/translate", h.translate)
	e.POST("/api/chat", h.chat)
	e.POST("/api/report", h.report)
	e.POST("/api/speak", h.speak)
	if h.Live != nil {
		e.GET("/ws/session", h.session)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

func (h Handlers) languages(c echo.Context) error {
	return c.JSON(http.StatusOK, language.All())
}

func (h Handlers) translate(c echo.Context) error {
	if h.Gateway == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "provider not configured"})
	}
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "text is required"})
	}
	if !language.Supported(req.SourceLanguage) || !language.Supported(req.TargetLanguage) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unsupported language"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	translated, err := h.Gateway.Translate(ctx, req.Text, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		c.Echo().Logger.Errorf("translate failed: %v", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "translation failed"})
	}
	return c.JSON(http.StatusOK, translateResponse{Translation: translated})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h Handlers) chat(c echo.Context) error {
	if h.Gateway == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "provider not configured"})
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "message is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	reply, err := h.Gateway.Chat(ctx, req.Message)
	if err != nil {
		c.Echo().Logger.Errorf("chat failed: %v", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "chat failed"})
	}
	return c.JSON(http.StatusOK, chatResponse{Response: reply})
}

type analysisResponse struct {
	Analysis string `json:"analysis"`
}

func (h Handlers) report(c echo.Context) error {
	if h.Gateway == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "provider not configured"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "file is required"})
	}
	if fh.Size > maxReportBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read file"})
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxReportBytes+1))
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read file"})
	}
	if len(data) > maxReportBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	analysis, err := h.Gateway.AnalyzeReport(ctx, data, mimeType)
	if err != nil {
		c.Echo().Logger.Errorf("report analysis failed: %v", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "report analysis failed"})
	}

	if h.Archive != nil {
		key := fmt.Sprintf("report_%s%s", uuid.NewString(), extensionFor(mimeType))
		go func() {
			if err := h.Archive.Upload(key, mimeType, data); err != nil {
				c.Echo().Logger.Errorf("failed to archive report %s: %v", key, err)
			} else {
				c.Echo().Logger.Infof("report archived: %s", key)
			}
		}()
	}

	return c.JSON(http.StatusOK, analysisResponse{Analysis: analysis})
}

type speakRequest struct {
	Text string `json:"text"`
}

func (h Handlers) speak(c echo.Context) error {
	if h.Speech == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "speech synthesis not configured"})
	}
	var req speakRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "text is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	wav, err := h.Speech.SynthesizeWAV(ctx, req.Text)
	if err != nil {
		c.Echo().Logger.Errorf("speech synthesis failed: %v", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "speech synthesis failed"})
	}
	return c.Blob(http.StatusOK, "audio/wav", wav)
}

func (h Handlers) session(c echo.Context) error {
	h.Live.ServeWebSocket(c.Response(), c.Request())
	return nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "text/plain":
		return ".txt"
	default:
		return ""
	}
}
