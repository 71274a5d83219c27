package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// Duration probes the audio duration of the file in seconds.
// Callers treat a probe failure as "duration unknown" (zero), never fatal.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, NewProcessingError("duration_probe", path, err, stderr.String())
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return 0, nil
	}

	duration, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, NewProcessingError("duration_probe", path, err, "")
	}
	if duration < 0 {
		duration = 0
	}

	return duration, nil
}
