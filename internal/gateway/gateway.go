package gateway

import "context"

// Gateway is the remote generative-language provider behind translation,
// chat, and report analysis. All three operations are stateless
// request/response calls; any provider failure surfaces as an ordinary error.
type Gateway interface {
	// Translate renders text from sourceLang into targetLang. Both are
	// region-tagged locale codes from the language catalog.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	// Chat answers a single free-form medical question.
	Chat(ctx context.Context, message string) (string, error)
	// AnalyzeReport summarizes an uploaded medical report. The bytes may be
	// plain text, an image, or a PDF; mimeType tells the provider which.
	AnalyzeReport(ctx context.Context, data []byte, mimeType string) (string, error)
}
