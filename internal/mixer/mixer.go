// Package mixer blends a narration recording with a background music track
// by invoking FFmpeg as an external process.
package mixer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Mixer produces one mixed output file from a narration file and a
// background track. A single attempt, no retry: failures surface as-is.
type Mixer interface {
	Mix(ctx context.Context, narrationPath, musicPath, outPath string) error
}

// Background volume is fixed at a quarter of the source amplitude, and the
// output duration is pinned to the narration (first input).
const filterGraph = "[1:a]volume=0.25[bg];[0:a][bg]amix=inputs=2:duration=first:dropout_transition=2"

// FFmpeg runs the ffmpeg binary with a fixed mixing filter graph.
type FFmpeg struct {
	// Bin is the executable to invoke. Empty means "ffmpeg" from PATH.
	Bin string
}

var _ Mixer = (*FFmpeg)(nil)

func (f *FFmpeg) Mix(ctx context.Context, narrationPath, musicPath, outPath string) error {
	bin := f.Bin
	if bin == "" {
		bin = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, bin,
		"-i", narrationPath,
		"-i", musicPath,
		"-filter_complex", filterGraph,
		"-q:a", "2",
		"-loglevel", "error",
		"-y",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("ffmpeg mix: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg mix: %w", err)
	}

	return nil
}
