package gateway

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tamim-18/medical-healthcare/internal/language"
)

const chatSystemPrompt = "You are a helpful medical assistant. Answer health questions clearly and concisely in plain language. Remind the user to consult a doctor for diagnosis or treatment decisions."

const reportSystemPrompt = "You are a medical report analyzer. Summarize the findings of the attached report in plain language a patient can understand, list any values outside normal ranges, and suggest questions the patient could ask their doctor. Do not invent findings that are not in the report."

// GeminiGateway implements Gateway against the Google Gemini API.
type GeminiGateway struct {
	client *genai.Client
	model  string
}

// NewGemini builds a gateway for the given API key and model id.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key missing")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiGateway{client: client, model: model}, nil
}

// translatePrompt asks for the bare translation and nothing else; any
// commentary from the model would end up verbatim in the patient-facing UI.
func translatePrompt(text, sourceLang, targetLang string) string {
	return fmt.Sprintf(
		"Translate the following text from %s to %s. This is a healthcare conversation; keep medical terms accurate. Return only the translated text with no explanations or quotes.\n\n%s",
		language.DisplayName(sourceLang), language.DisplayName(targetLang), text)
}

func (g *GeminiGateway) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return g.generate(ctx, "", translatePrompt(text, sourceLang, targetLang), nil, "")
}

func (g *GeminiGateway) Chat(ctx context.Context, message string) (string, error) {
	return g.generate(ctx, chatSystemPrompt, message, nil, "")
}

func (g *GeminiGateway) AnalyzeReport(ctx context.Context, data []byte, mimeType string) (string, error) {
	return g.generate(ctx, reportSystemPrompt, "Analyze this medical report.", data, mimeType)
}

// generate performs one non-streaming GenerateContent call. When blob is
// non-nil it is attached alongside the text part with its MIME type.
func (g *GeminiGateway) generate(ctx context.Context, system, prompt string, blob []byte, mimeType string) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if blob != nil {
		parts = append(parts, genai.NewPartFromBytes(blob, mimeType))
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(system)}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return extractText(resp)
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: empty candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("gemini: candidate without content")
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if p.Text != "" {
			sb.WriteString(p.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("gemini: candidate without text")
	}
	return out, nil
}
