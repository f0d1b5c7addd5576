package mixer_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/versemix/versemix/internal/mixer"
)

// stubBin writes a shell script standing in for ffmpeg.
func stubBin(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMixWritesOutput(t *testing.T) {
	// The stub writes to its final argument, as ffmpeg does.
	bin := stubBin(t, `for a; do out=$a; done; printf mixed > "$out"`)
	m := &mixer.FFmpeg{Bin: bin}

	narration := writeFile(t, "narration.mp3", "voice")
	music := writeFile(t, "music.mp3", "music")
	out := filepath.Join(t.TempDir(), "out.mp3")

	if err := m.Mix(context.Background(), narration, music, out); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "mixed" {
		t.Errorf("got %q, want %q", got, "mixed")
	}
}

func TestMixSurfacesStderr(t *testing.T) {
	bin := stubBin(t, `echo "no such filter" >&2; exit 1`)
	m := &mixer.FFmpeg{Bin: bin}

	err := m.Mix(context.Background(), "a", "b", "c")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no such filter") {
		t.Errorf("error does not carry tool stderr: %v", err)
	}
}

func TestMixCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &mixer.FFmpeg{Bin: stubBin(t, `sleep 10`)}
	if err := m.Mix(ctx, "a", "b", "c"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
