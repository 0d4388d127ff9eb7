package storage

import (
	"bytes"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// Archive stores uploaded report files for later review.
type Archive interface {
	Upload(key, contentType string, data []byte) error
}

// Config holds Supabase storage settings.
type Config struct {
	URL            string
	ServiceRoleKey string
	Bucket         string
}

// Supabase implements Archive on a Supabase storage bucket.
type Supabase struct {
	client *supabase.Client
	bucket string
}

// New builds the archive client. Returns an error instead of panicking so a
// missing configuration just disables archiving.
func New(cfg Config) (*Supabase, error) {
	if cfg.URL == "" || cfg.ServiceRoleKey == "" {
		return nil, fmt.Errorf("supabase: url and service role key required")
	}
	client, err := supabase.NewClient(cfg.URL, cfg.ServiceRoleKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("supabase: create client: %w", err)
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "reports"
	}
	return &Supabase{client: client, bucket: bucket}, nil
}

func (s *Supabase) Upload(key, contentType string, data []byte) error {
	_, err := s.client.Storage.UploadFile(s.bucket, key, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("supabase: upload %s: %w", key, err)
	}
	return nil
}
