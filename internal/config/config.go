package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress string

	GeminiAPIKey string
	GeminiModel  string

	DeepgramAPIKey string
	DeepgramModel  string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	// AuthPassword, when set, is required on the live session socket.
	AuthPassword string

	// QuietInterval is the translation debounce window.
	QuietInterval time.Duration
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set - translation, chat and report analysis will not work")
	}
	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}

	deepgramKey := os.Getenv("DEEPGRAM_API_KEY")
	if deepgramKey == "" {
		log.Println("Warning: DEEPGRAM_API_KEY not set - server-side speech synthesis disabled")
	}
	deepgramModel := os.Getenv("DEEPGRAM_TTS_MODEL")

	supaURL := os.Getenv("SUPABASE_URL")
	supaKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	supaBucket := os.Getenv("SUPABASE_BUCKET")
	if supaBucket == "" {
		supaBucket = "reports"
	}
	if supaURL == "" || supaKey == "" {
		log.Println("report archiving disabled (SUPABASE_URL / SUPABASE_SERVICE_ROLE_KEY not set)")
	}

	quiet := 500 * time.Millisecond
	if v := os.Getenv("TRANSLATE_QUIET_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			quiet = time.Duration(ms) * time.Millisecond
		} else {
			log.Printf("Warning: invalid TRANSLATE_QUIET_MS=%q, using default", v)
		}
	}

	log.Printf("config: HTTP_ADDRESS=%s model=%s quiet=%s", addr, geminiModel, quiet)
	return Config{
		HTTPAddress:        addr,
		GeminiAPIKey:       geminiKey,
		GeminiModel:        geminiModel,
		DeepgramAPIKey:     deepgramKey,
		DeepgramModel:      deepgramModel,
		SupabaseURL:        supaURL,
		SupabaseServiceKey: supaKey,
		SupabaseBucket:     supaBucket,
		AuthPassword:       os.Getenv("AUTH_PASSWORD"),
		QuietInterval:      quiet,
	}
}
