package timing

import (
	"math"
	"testing"

	"github.com/DV0x/fashion-shoot-agent-sub003/internal/easing"
)

func TestFrameCountFormula(t *testing.T) {
	cases := []struct {
		outDur, fps float64
		want        int
	}{
		{1.5, 60, 90},
		{1.0, 30, 30},
		{0.999, 30, 29},
		{0.01, 10, 0},
		{0.1, 10, 1},
	}

	for _, c := range cases {
		plan, err := MapTimestamps(easing.Linear, 3.0, c.outDur, c.fps)
		if err != nil {
			t.Fatalf("MapTimestamps(%v, %v): %v", c.outDur, c.fps, err)
		}
		if plan.TotalFrames != c.want {
			t.Errorf("TotalFrames for %vs @ %vfps = %d, want %d", c.outDur, c.fps, plan.TotalFrames, c.want)
		}
		if len(plan.Timestamps) != c.want {
			t.Errorf("len(Timestamps) = %d, want %d", len(plan.Timestamps), c.want)
		}
	}
}

func TestCompressionRatioIdentity(t *testing.T) {
	cases := []struct{ in, out float64 }{
		{3.0, 1.5},
		{5.0, 5.0},
		{1.0, 4.0},
		{7.3, 0.9},
	}
	for _, c := range cases {
		plan, err := MapTimestamps(easing.Linear, c.in, c.out, 30)
		if err != nil {
			t.Fatal(err)
		}
		if plan.CompressionRatio != c.in/c.out {
			t.Errorf("CompressionRatio = %v, want %v", plan.CompressionRatio, c.in/c.out)
		}
	}
}

func TestLinearUniformResampling(t *testing.T) {
	// Real-time passthrough: uniform spacing i/(n-1) * duration.
	plan, err := MapTimestamps(easing.Linear, 5.0, 5.0, 30)
	if err != nil {
		t.Fatal(err)
	}
	if plan.TotalFrames != 150 {
		t.Fatalf("TotalFrames = %d, want 150", plan.TotalFrames)
	}
	for i := 0; i < plan.TotalFrames-1; i++ {
		want := float64(i) / 149 * 5.0
		if plan.Timestamps[i] != want {
			t.Fatalf("timestamp[%d] = %v, want %v", i, plan.Timestamps[i], want)
		}
	}
	// The final sample is held just short of end-of-stream.
	last := plan.Timestamps[plan.TotalFrames-1]
	if last >= 5.0 || last < 4.998 {
		t.Errorf("final timestamp = %v, want just below 5.0", last)
	}
}

func TestSingleFrameSchedule(t *testing.T) {
	plan, err := MapTimestamps(easing.QuadInOut, 3.0, 0.1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if plan.TotalFrames != 1 {
		t.Fatalf("TotalFrames = %d, want 1", plan.TotalFrames)
	}
	// Degenerate schedule samples at progress 0, not a division by zero.
	if plan.Timestamps[0] != 0 {
		t.Errorf("single-frame timestamp = %v, want 0", plan.Timestamps[0])
	}
}

func TestZeroFrameSchedule(t *testing.T) {
	plan, err := MapTimestamps(easing.Linear, 3.0, 0.01, 10)
	if err != nil {
		t.Fatal(err)
	}
	if plan.TotalFrames != 0 || len(plan.Timestamps) != 0 {
		t.Errorf("expected an empty schedule, got %d frames", plan.TotalFrames)
	}
}

func TestDegenerateDurationsRejected(t *testing.T) {
	if _, err := MapTimestamps(easing.Linear, 0, 1.5, 60); err == nil {
		t.Error("expected error for zero input duration")
	}
	if _, err := MapTimestamps(easing.Linear, 3.0, -1, 60); err == nil {
		t.Error("expected error for negative output duration")
	}
	if _, err := MapTimestamps(easing.Linear, 3.0, 1.5, 0); err == nil {
		t.Error("expected error for zero fps")
	}
	if _, err := MapTimestamps(nil, 3.0, 1.5, 60); err == nil {
		t.Error("expected error for nil easing function")
	}
}

func TestMonotonicEasingGivesMonotonicSchedule(t *testing.T) {
	for _, fn := range []easing.Func{easing.Linear, easing.CubicInOut, easing.QuintInOut} {
		plan, err := MapTimestamps(fn, 4.0, 2.0, 60)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(plan.Timestamps); i++ {
			if plan.Timestamps[i] < plan.Timestamps[i-1] {
				t.Fatalf("schedule decreases at frame %d: %v < %v", i, plan.Timestamps[i], plan.Timestamps[i-1])
			}
		}
	}
}

func TestDramaticSwoopSchedule(t *testing.T) {
	// The invisible-cut scenario: a 3s clip squeezed into 1.5s at 60fps with a
	// hard ease-in-out. Ends freeze, the middle sweeps.
	fn := easing.NewBezier(0.85, 0, 0.15, 1)
	plan, err := MapTimestamps(fn, 3.0, 1.5, 60)
	if err != nil {
		t.Fatal(err)
	}
	if plan.TotalFrames != 90 {
		t.Fatalf("TotalFrames = %d, want 90", plan.TotalFrames)
	}

	// First and last ~10% of frames stay in narrow bands at the clip edges.
	for i := 0; i < 9; i++ {
		if plan.Timestamps[i] > 0.3 {
			t.Errorf("frame %d at %.3fs, want near-frozen start", i, plan.Timestamps[i])
		}
		j := 89 - i
		if plan.Timestamps[j] < 2.7 {
			t.Errorf("frame %d at %.3fs, want near-frozen end", j, plan.Timestamps[j])
		}
	}

	// The middle ~20% of frames sweeps more than half the source.
	span := plan.Timestamps[53] - plan.Timestamps[36]
	if span <= 1.5 {
		t.Errorf("middle sweep covers %.3fs of source, want > 1.5s", span)
	}

	stats := AnalyzeSpeed(plan.Timestamps, 60)
	if stats == nil {
		t.Fatal("AnalyzeSpeed returned nil")
	}
	if stats.Middle <= 3*stats.Start {
		t.Errorf("middle speed %.2f not >3x start speed %.2f", stats.Middle, stats.Start)
	}
	if stats.Middle <= 3*stats.End {
		t.Errorf("middle speed %.2f not >3x end speed %.2f", stats.Middle, stats.End)
	}
}

func TestSpeedAnalysis(t *testing.T) {
	// Uniform real-time schedule: every step runs at 1.0x.
	plan, err := MapTimestamps(easing.Linear, 2.0, 2.0, 30)
	if err != nil {
		t.Fatal(err)
	}
	stats := AnalyzeSpeed(plan.Timestamps, 30)
	if stats == nil {
		t.Fatal("AnalyzeSpeed returned nil")
	}
	for name, v := range map[string]float64{
		"min": stats.Min, "max": stats.Max, "avg": stats.Avg,
		"start": stats.Start, "middle": stats.Middle,
	} {
		if math.Abs(v-1.0) > 0.02 {
			t.Errorf("%s speed = %v, want ~1.0", name, v)
		}
	}

	if AnalyzeSpeed(nil, 30) != nil {
		t.Error("expected nil stats for an empty schedule")
	}
	if AnalyzeSpeed([]float64{0.5}, 30) != nil {
		t.Error("expected nil stats for a single-frame schedule")
	}
}
