package stitch

import (
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/ffmpeg"
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/timing"
)

// ScaleMode selects how source frames are normalized to the output dimensions.
type ScaleMode int

const (
	// ScaleFitPad preserves aspect ratio and pads to center with a fill color.
	ScaleFitPad ScaleMode = iota
	// ScaleStretch stretches to the exact output dimensions.
	ScaleStretch
)

// Options describes one stitch job.
type Options struct {
	// Inputs are the source clips, in output order.
	Inputs []string
	// Output is the final video path.
	Output string
	// ClipDuration is the retimed duration of each clip in seconds.
	// Zero takes the configured default.
	ClipDuration float64
	// Easing is a registered curve name or four comma-separated Bezier
	// control values. Empty takes the configured default.
	Easing string
	// OutputFPS is the output frame rate. Zero takes the configured default.
	OutputFPS float64
	// ScratchDir overrides the per-job scratch directory. Callers running
	// concurrent jobs must give each its own.
	ScratchDir string
	// KeepFrames retains the scratch frame files for debugging.
	KeepFrames bool
	// ScaleMode picks stretch vs scale-and-pad normalization.
	ScaleMode ScaleMode
	// PadColor fills the bars in ScaleFitPad mode. Empty takes the default.
	PadColor string
	// ProgressFunc, when set, is called every 10 frames and at each clip
	// boundary. Observational only.
	ProgressFunc ProgressFunc
}

// Progress reports extraction progress for one in-flight job.
type Progress struct {
	Clip        int // zero-based clip index
	ClipCount   int
	ClipFrame   int // frames done within the current clip
	ClipFrames  int
	TotalFrames int // frames done across the whole job
}

// ProgressFunc receives extraction progress updates.
type ProgressFunc func(Progress)

// clip is one source video with its derived metadata and sampling schedule,
// scoped to a single job.
type clip struct {
	path string
	info *ffmpeg.VideoInfo
	plan *timing.Plan
}
