package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/DV0x/fashion-shoot-agent-sub003/internal/config"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH - install with: brew install ffmpeg")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH - install with: brew install ffmpeg")
	}
}

// makeTestVideo renders a short synthetic clip into dir and returns its path
func makeTestVideo(t *testing.T, dir string, duration float64, size string, rate int) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("test_%s.mp4", size))
	cmd := exec.Command("ffmpeg", "-y", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("testsrc=duration=%g:size=%s:rate=%d", duration, size, rate),
		"-pix_fmt", "yuv420p",
		path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to generate test video: %v\n%s", err, out)
	}
	return path
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	e, err := New(zerolog.New(os.Stderr), config.FFmpegConfig{Threads: 2})
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	return e
}

func TestExecutorCreation(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	if e.ffmpegPath == "" {
		t.Error("ffmpeg path is empty")
	}
	if e.ffprobePath == "" {
		t.Error("ffprobe path is empty")
	}
	t.Logf("ffmpeg: %s", e.ffmpegPath)
	t.Logf("ffprobe: %s", e.ffprobePath)
}

func TestExecutorMissingBinary(t *testing.T) {
	_, err := New(zerolog.Nop(), config.FFmpegConfig{BinaryPath: "/no/such/ffmpeg"})
	if err == nil {
		t.Fatal("expected an error for a missing ffmpeg binary")
	}
}

func TestProbeVideo(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	video := makeTestVideo(t, t.TempDir(), 2.0, "320x240", 30)

	info, err := e.ProbeVideo(context.Background(), video)
	if err != nil {
		t.Fatalf("ProbeVideo failed: %v", err)
	}

	if info.Width != 320 {
		t.Errorf("expected width 320, got %d", info.Width)
	}
	if info.Height != 240 {
		t.Errorf("expected height 240, got %d", info.Height)
	}
	if info.Duration < 1.9 || info.Duration > 2.1 {
		t.Errorf("expected ~2s duration, got %v", info.Duration)
	}
	if info.FPS < 29.9 || info.FPS > 30.1 {
		t.Errorf("expected ~30 fps, got %v", info.FPS)
	}

	t.Logf("Video info: %dx%d, %.2f fps, %.2fs", info.Width, info.Height, info.FPS, info.Duration)
}

func TestProbeNonVideoFile(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	path := filepath.Join(t.TempDir(), "not_a_video.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := e.ProbeVideo(context.Background(), path); err == nil {
		t.Error("expected an error probing a non-video file")
	}
}

func TestExtractFrame(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	video := makeTestVideo(t, dir, 2.0, "320x240", 30)

	out := filepath.Join(dir, "frame_000000.png")
	filter := NewFilterBuilder().Scale(160, 120).Build()
	err := e.ExtractFrame(context.Background(), FrameOptions{
		Input:     video,
		Timestamp: 1.0,
		Output:    out,
		Filter:    filter,
	})
	if err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}

	stat, err := os.Stat(out)
	if err != nil {
		t.Fatalf("extracted frame missing: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("extracted frame is empty")
	}
}

func TestEncodeSequence(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	video := makeTestVideo(t, dir, 1.0, "320x240", 30)

	// Build a short numbered sequence first.
	for i := 0; i < 10; i++ {
		err := e.ExtractFrame(context.Background(), FrameOptions{
			Input:     video,
			Timestamp: float64(i) * 0.1,
			Output:    filepath.Join(dir, fmt.Sprintf("frame_%06d.png", i)),
		})
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	out := filepath.Join(dir, "out.mp4")
	err := e.EncodeSequence(context.Background(), SequenceOptions{
		Pattern:     filepath.Join(dir, "frame_%06d.png"),
		Output:      out,
		FPS:         30,
		CRF:         20,
		MaxRateKbps: 4000,
		FastStart:   true,
	})
	if err != nil {
		t.Fatalf("EncodeSequence failed: %v", err)
	}

	info, err := e.ProbeVideo(context.Background(), out)
	if err != nil {
		t.Fatalf("probing encoded output: %v", err)
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("encoded dimensions %dx%d, want 320x240", info.Width, info.Height)
	}
}

func TestConcat(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	a := makeTestVideo(t, dir, 1.0, "320x240", 30)
	b := filepath.Join(dir, "copy.mp4")
	data, err := os.ReadFile(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, data, 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "joined.mp4")
	if err := e.Concat(context.Background(), ConcatOptions{
		Inputs: []string{a, b},
		Output: out,
	}); err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	info, err := e.ProbeVideo(context.Background(), out)
	if err != nil {
		t.Fatalf("probing joined output: %v", err)
	}
	if info.Duration < 1.8 {
		t.Errorf("joined duration %v, want ~2s", info.Duration)
	}
}
