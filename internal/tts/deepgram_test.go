package tts

import (
	"context"
	"encoding/binary"
	"testing"
	"time"
)

// Smoke test: without an API key SynthesizeWAV must fail fast.
func TestDeepgram_SynthesizeWAV_NoKey(t *testing.T) {
	d := NewDeepgramClient("", "")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := d.SynthesizeWAV(ctx, "hello"); err == nil {
		t.Fatalf("expected error when api key missing")
	}
}

func TestDeepgram_SynthesizeWAV_EmptyText(t *testing.T) {
	d := NewDeepgramClient("key", "")
	if _, err := d.SynthesizeWAV(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty text")
	}
}

func TestWrapWAV_Header(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0}
	wav := wrapWAV(pcm, 48000)
	if len(wav) != 44+len(pcm) {
		t.Fatalf("expected 44-byte header + payload, got %d bytes", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("bad RIFF header")
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 48000 {
		t.Fatalf("sample rate mismatch: %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("data length mismatch: %d", got)
	}
}
