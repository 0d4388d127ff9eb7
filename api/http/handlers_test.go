package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tamim-18/medical-healthcare/internal/language"
)

type fakeGateway struct {
	translation string
	reply       string
	analysis    string
	err         error

	mu        sync.Mutex
	lastText  string
	lastMime  string
	lastBytes []byte
}

func (f *fakeGateway) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	f.mu.Lock()
	f.lastText = text
	f.mu.Unlock()
	return f.translation, f.err
}

func (f *fakeGateway) Chat(ctx context.Context, message string) (string, error) {
	return f.reply, f.err
}

func (f *fakeGateway) AnalyzeReport(ctx context.Context, data []byte, mimeType string) (string, error) {
	f.mu.Lock()
	f.lastBytes = data
	f.lastMime = mimeType
	f.mu.Unlock()
	return f.analysis, f.err
}

type fakeSynth struct {
	wav []byte
	err error
}

func (f *fakeSynth) SynthesizeWAV(ctx context.Context, text string) ([]byte, error) {
	return f.wav, f.err
}

type fakeArchive struct {
	uploaded chan string
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{uploaded: make(chan string, 1)}
}

func (f *fakeArchive) Upload(key, contentType string, data []byte) error {
	f.uploaded <- key
	return nil
}

func newTestServer(gw *fakeGateway, speech *fakeSynth, archive *fakeArchive) *echo.Echo {
	e := echo.New()
	h := Handlers{}
	if gw != nil {
		h.Gateway = gw
	}
	if speech != nil {
		h.Speech = speech
	}
	if archive != nil {
		h.Archive = archive
	}
	h.Register(e)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func TestHealthz(t *testing.T) {
	e := newTestServer(&fakeGateway{}, nil, nil)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLanguages_ListsCatalog(t *testing.T) {
	e := newTestServer(&fakeGateway{}, nil, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []language.Language
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(language.All()) {
		t.Fatalf("expected %d languages, got %d", len(language.All()), len(got))
	}
}

func TestTranslate_OK(t *testing.T) {
	gw := &fakeGateway{translation: "Hola"}
	e := newTestServer(gw, nil, nil)
	w := postJSON(e, "/api/translate", `{"text":"Hello","sourceLanguage":"en-US","targetLanguage":"es-ES"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp translateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Translation != "Hola" {
		t.Fatalf("expected Hola, got %q", resp.Translation)
	}
}

func TestTranslate_EmptyText(t *testing.T) {
	e := newTestServer(&fakeGateway{}, nil, nil)
	w := postJSON(e, "/api/translate", `{"text":"  ","sourceLanguage":"en-US","targetLanguage":"es-ES"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTranslate_UnsupportedLanguage(t *testing.T) {
	e := newTestServer(&fakeGateway{}, nil, nil)
	w := postJSON(e, "/api/translate", `{"text":"Hello","sourceLanguage":"xx-XX","targetLanguage":"es-ES"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTranslate_GatewayFailure(t *testing.T) {
	e := newTestServer(&fakeGateway{err: errors.New("upstream down")}, nil, nil)
	w := postJSON(e, "/api/translate", `{"text":"Hello","sourceLanguage":"en-US","targetLanguage":"es-ES"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == "" {
		t.Fatalf("expected error message in body")
	}
}

func TestTranslate_NoProvider(t *testing.T) {
	e := newTestServer(nil, nil, nil)
	w := postJSON(e, "/api/translate", `{"text":"Hello","sourceLanguage":"en-US","targetLanguage":"es-ES"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestChat_OK(t *testing.T) {
	e := newTestServer(&fakeGateway{reply: "Drink water and rest."}, nil, nil)
	w := postJSON(e, "/api/chat", `{"message":"I have a headache"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Response == "" {
		t.Fatalf("expected non-empty response")
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	e := newTestServer(&fakeGateway{}, nil, nil)
	w := postJSON(e, "/api/chat", `{"message":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func multipartReport(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestReport_OKAndArchives(t *testing.T) {
	gw := &fakeGateway{analysis: "Cholesterol slightly elevated."}
	archive := newFakeArchive()
	e := newTestServer(gw, nil, archive)

	body, contentType := multipartReport(t, "file", "labs.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	r := httptest.NewRequest(http.MethodPost, "/api/report", body)
	r.Header.Set(echo.HeaderContentType, contentType)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp analysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Analysis == "" {
		t.Fatalf("expected non-empty analysis")
	}
	gw.mu.Lock()
	mime := gw.lastMime
	gw.mu.Unlock()
	if mime != "application/pdf" {
		t.Fatalf("expected pdf mime forwarded, got %q", mime)
	}

	select {
	case key := <-archive.uploaded:
		if !strings.HasPrefix(key, "report_") || !strings.HasSuffix(key, ".pdf") {
			t.Fatalf("unexpected archive key %q", key)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for archive upload")
	}
}

func TestReport_MissingFile(t *testing.T) {
	e := newTestServer(&fakeGateway{}, nil, nil)
	w := postJSON(e, "/api/report", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSpeak_OK(t *testing.T) {
	wav := []byte("RIFFxxxxWAVE")
	e := newTestServer(&fakeGateway{}, &fakeSynth{wav: wav}, nil)
	w := postJSON(e, "/api/speak", `{"text":"Hola"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get(echo.HeaderContentType); got != "audio/wav" {
		t.Fatalf("expected audio/wav, got %q", got)
	}
	if !bytes.Equal(w.Body.Bytes(), wav) {
		t.Fatalf("body mismatch")
	}
}

func TestSpeak_NotConfigured(t *testing.T) {
	e := newTestServer(&fakeGateway{}, nil, nil)
	w := postJSON(e, "/api/speak", `{"text":"Hola"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
