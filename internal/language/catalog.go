package language

// Language pairs a region-tagged locale code with its display name.
type Language struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
}

// catalog is the fixed set of languages the assistant speaks. Codes are
// region-tagged so the browser speech APIs on both ends resolve the same
// voice/recognizer variants.
var catalog = []Language{
	{Code: "en-US", DisplayName: "English (US)"},
	{Code: "es-ES", DisplayName: "Spanish"},
	{Code: "fr-FR", DisplayName: "French"},
	{Code: "de-DE", DisplayName: "German"},
	{Code: "it-IT", DisplayName: "Italian"},
	{Code: "pt-BR", DisplayName: "Portuguese (Brazil)"},
	{Code: "hi-IN", DisplayName: "Hindi"},
	{Code: "bn-BD", DisplayName: "Bengali"},
	{Code: "zh-CN", DisplayName: "Chinese (Mandarin)"},
	{Code: "ja-JP", DisplayName: "Japanese"},
	{Code: "ar-SA", DisplayName: "Arabic"},
	{Code: "ru-RU", DisplayName: "Russian"},
}

// All returns the full catalog in stable order. The returned slice is a copy.
func All() []Language {
	out := make([]Language, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a locale code to its catalog entry.
func Lookup(code string) (Language, bool) {
	for _, l := range catalog {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Supported reports whether the code is part of the catalog.
func Supported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// DisplayName returns the human-readable name for a code, falling back to the
// code itself so prompts stay usable even for unknown locales.
func DisplayName(code string) string {
	if l, ok := Lookup(code); ok {
		return l.DisplayName
	}
	return code
}
