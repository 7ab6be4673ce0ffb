// Package timing computes the per-frame source timestamps that drive the
// retiming pipeline: output-frame progress is remapped through an easing
// curve, then scaled onto the source clip's duration.
package timing

import (
	"fmt"
	"math"

	"github.com/DV0x/fashion-shoot-agent-sub003/internal/easing"
)

// endEpsilon keeps the last seek strictly before end-of-stream, where frame
// extraction would otherwise decode nothing.
const endEpsilon = 0.001

// Plan is the sampling schedule for one clip: one source timestamp per output
// frame. Timestamps are monotonic only when the easing curve is; overshoot
// curves produce backward samples on purpose.
type Plan struct {
	Timestamps       []float64
	TotalFrames      int
	CompressionRatio float64
}

// MapTimestamps computes the source timestamp for each of the
// floor(outputDuration*outputFps) output frames. A schedule of one frame (or
// zero) is valid and samples at progress 0.
func MapTimestamps(fn easing.Func, inputDuration, outputDuration, outputFps float64) (*Plan, error) {
	if fn == nil {
		return nil, fmt.Errorf("no easing function provided")
	}
	if inputDuration <= 0 || math.IsNaN(inputDuration) {
		return nil, fmt.Errorf("input duration must be positive, got %v", inputDuration)
	}
	if outputDuration <= 0 || math.IsNaN(outputDuration) {
		return nil, fmt.Errorf("output duration must be positive, got %v", outputDuration)
	}
	if outputFps <= 0 || math.IsNaN(outputFps) {
		return nil, fmt.Errorf("output fps must be positive, got %v", outputFps)
	}

	totalFrames := int(math.Floor(outputDuration * outputFps))

	limit := inputDuration - endEpsilon
	if limit < 0 {
		limit = 0
	}

	plan := &Plan{
		Timestamps:       make([]float64, 0, totalFrames),
		TotalFrames:      totalFrames,
		CompressionRatio: inputDuration / outputDuration,
	}

	for i := 0; i < totalFrames; i++ {
		progress := 0.0
		if totalFrames > 1 {
			progress = float64(i) / float64(totalFrames-1)
		}
		source := fn(progress) * inputDuration
		if source < 0 {
			source = 0
		} else if source > limit {
			source = limit
		}
		plan.Timestamps = append(plan.Timestamps, source)
	}

	return plan, nil
}

// SpeedStats summarizes apparent playback speed across a schedule. 1.0 is
// real-time, below is slow motion, above is fast-forward.
type SpeedStats struct {
	Min    float64
	Max    float64
	Avg    float64
	Start  float64
	Middle float64
	End    float64
}

// StepSpeeds returns the instantaneous speed of each frame step: source-time
// delta over output frame duration.
func StepSpeeds(timestamps []float64, outputFps float64) []float64 {
	if len(timestamps) < 2 || outputFps <= 0 {
		return nil
	}
	frameDuration := 1.0 / outputFps
	speeds := make([]float64, len(timestamps)-1)
	for i := range speeds {
		speeds[i] = (timestamps[i+1] - timestamps[i]) / frameDuration
	}
	return speeds
}

// AnalyzeSpeed computes summary statistics over a schedule's step speeds.
// Diagnostic only; nil when the schedule has fewer than two frames.
func AnalyzeSpeed(timestamps []float64, outputFps float64) *SpeedStats {
	speeds := StepSpeeds(timestamps, outputFps)
	if len(speeds) == 0 {
		return nil
	}

	stats := &SpeedStats{
		Min:    speeds[0],
		Max:    speeds[0],
		Start:  speeds[0],
		Middle: speeds[len(speeds)/2],
		End:    speeds[len(speeds)-1],
	}
	sum := 0.0
	for _, s := range speeds {
		if s < stats.Min {
			stats.Min = s
		}
		if s > stats.Max {
			stats.Max = s
		}
		sum += s
	}
	stats.Avg = sum / float64(len(speeds))
	return stats
}
