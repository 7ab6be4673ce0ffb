// Package stitch is the video retiming pipeline: each source clip is
// re-sampled through an easing curve into a fixed output duration, frames
// from all clips land in one globally numbered scratch sequence, and a single
// encode pass produces the deliverable.
package stitch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DV0x/fashion-shoot-agent-sub003/internal/config"
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/easing"
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/ffmpeg"
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/timing"
	"github.com/DV0x/fashion-shoot-agent-sub003/pkg/util"
)

const framePattern = "frame_%06d.png"

// Stitcher orchestrates retiming jobs. It runs clips strictly sequentially;
// the scratch directory belongs to one job at a time.
type Stitcher struct {
	logger zerolog.Logger
	ffmpeg *ffmpeg.Executor
	curves *easing.Registry
	cfg    *config.Config
}

// New creates a stitcher. Fails when the ffmpeg tooling is not available.
func New(logger zerolog.Logger, cfg *config.Config) (*Stitcher, error) {
	exec, err := ffmpeg.New(logger, cfg.FFmpeg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	return &Stitcher{
		logger: logger.With().Str("component", "stitch").Logger(),
		ffmpeg: exec,
		curves: easing.NewRegistry(logger),
		cfg:    cfg,
	}, nil
}

// Stitch runs one retiming job to completion and returns the output path.
// Any probe, extract, or encode failure aborts the whole job with a
// *StepError and leaves no partial output behind.
func (s *Stitcher) Stitch(ctx context.Context, opts Options) (string, error) {
	if len(opts.Inputs) == 0 {
		return "", fmt.Errorf("no input clips provided")
	}
	if opts.Output == "" {
		return "", fmt.Errorf("output path is required")
	}
	s.applyDefaults(&opts)

	fn := s.curves.Parse(opts.Easing)

	s.logger.Info().
		Int("clips", len(opts.Inputs)).
		Str("output", opts.Output).
		Float64("clip_duration", opts.ClipDuration).
		Float64("fps", opts.OutputFPS).
		Str("easing", opts.Easing).
		Msg("starting stitch job")

	// Probe everything up front so dimension planning sees all clips before
	// any extraction starts.
	clips := make([]*clip, 0, len(opts.Inputs))
	for _, input := range opts.Inputs {
		info, err := s.ffmpeg.ProbeVideo(ctx, input)
		if err != nil {
			return "", probeError(input, err)
		}
		if info.Duration <= 0 {
			return "", probeError(input, fmt.Errorf("clip has no playable duration"))
		}
		clips = append(clips, &clip{path: input, info: info})
	}

	width, height := targetDims(clips)
	s.logger.Info().Int("width", width).Int("height", height).Msg("output dimensions planned")

	scratch := opts.ScratchDir
	if scratch == "" {
		scratch = filepath.Join(s.cfg.ScratchDir, "stitch-"+uuid.NewString())
	}
	if err := util.EnsureDir(scratch); err != nil {
		return "", fmt.Errorf("failed to create scratch dir: %w", err)
	}
	if !opts.KeepFrames {
		defer os.RemoveAll(scratch)
	}

	filter := s.buildScaleFilter(opts, width, height)

	if err := s.extractAll(ctx, clips, fn, opts, scratch, filter); err != nil {
		return "", err
	}

	err := s.ffmpeg.EncodeSequence(ctx, ffmpeg.SequenceOptions{
		Pattern:     filepath.Join(scratch, framePattern),
		Output:      opts.Output,
		FPS:         opts.OutputFPS,
		CRF:         s.cfg.Encode.CRF,
		MaxRateKbps: s.cfg.Encode.MaxRateKbps,
		Preset:      s.cfg.Encode.Preset,
		PixelFormat: s.cfg.Encode.PixelFormat,
		FastStart:   s.cfg.Encode.FastStart,
	})
	if err != nil {
		// No partial deliverable: a half-written container is worse than none.
		util.CleanupFiles(opts.Output)
		return "", encodeError(err)
	}

	s.logger.Info().Str("output", opts.Output).Msg("stitch job complete")
	return opts.Output, nil
}

// Join concatenates already-rendered videos in order, without retiming.
func (s *Stitcher) Join(ctx context.Context, inputs []string, output string, reencode bool) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input videos provided")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}
	err := s.ffmpeg.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs:   inputs,
		Output:   output,
		ReEncode: reencode,
		CRF:      s.cfg.Encode.CRF,
	})
	if err != nil {
		util.CleanupFiles(output)
		return encodeError(err)
	}
	return nil
}

// Probe exposes source metadata for the CLI surface.
func (s *Stitcher) Probe(ctx context.Context, input string) (*ffmpeg.VideoInfo, error) {
	return s.ffmpeg.ProbeVideo(ctx, input)
}

// Curves lists the registered easing curve names.
func (s *Stitcher) Curves() []string {
	return s.curves.Names()
}

// extractAll walks every clip's schedule and writes one globally numbered
// frame per timestamp. Frame numbering is strictly increasing across clip
// boundaries so the encode pass reproduces clip order by filename.
func (s *Stitcher) extractAll(ctx context.Context, clips []*clip, fn easing.Func, opts Options, scratch, filter string) error {
	frameIndex := 0
	for ci, c := range clips {
		plan, err := timing.MapTimestamps(fn, c.info.Duration, opts.ClipDuration, opts.OutputFPS)
		if err != nil {
			return fmt.Errorf("timestamp schedule for %s: %w", c.path, err)
		}
		c.plan = plan

		if stats := timing.AnalyzeSpeed(plan.Timestamps, opts.OutputFPS); stats != nil {
			s.logger.Debug().
				Str("clip", c.path).
				Float64("compression", plan.CompressionRatio).
				Float64("speed_start", stats.Start).
				Float64("speed_middle", stats.Middle).
				Float64("speed_end", stats.End).
				Float64("speed_max", stats.Max).
				Msg("sampling schedule computed")
		}

		for i, ts := range plan.Timestamps {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := filepath.Join(scratch, fmt.Sprintf(framePattern, frameIndex))
			err := s.ffmpeg.ExtractFrame(ctx, ffmpeg.FrameOptions{
				Input:     c.path,
				Timestamp: ts,
				Output:    out,
				Filter:    filter,
			})
			if err != nil {
				return extractError(c.path, i, err)
			}
			frameIndex++

			if opts.ProgressFunc != nil && ((i+1)%10 == 0 || i+1 == len(plan.Timestamps)) {
				opts.ProgressFunc(Progress{
					Clip:        ci,
					ClipCount:   len(clips),
					ClipFrame:   i + 1,
					ClipFrames:  len(plan.Timestamps),
					TotalFrames: frameIndex,
				})
			}
		}

		s.logger.Info().
			Str("clip", c.path).
			Int("frames", len(plan.Timestamps)).
			Int("total_frames", frameIndex).
			Msg("clip frames extracted")
	}

	if frameIndex == 0 {
		return fmt.Errorf("schedule produced no frames; increase duration or fps")
	}
	return nil
}

func (s *Stitcher) applyDefaults(opts *Options) {
	if opts.ClipDuration <= 0 {
		opts.ClipDuration = s.cfg.Stitch.ClipDuration
	}
	if opts.OutputFPS <= 0 {
		opts.OutputFPS = s.cfg.Stitch.OutputFPS
	}
	if opts.Easing == "" {
		opts.Easing = s.cfg.Stitch.Easing
	}
	if opts.PadColor == "" {
		opts.PadColor = s.cfg.Stitch.PadColor
	}
}

func (s *Stitcher) buildScaleFilter(opts Options, width, height int) string {
	fb := ffmpeg.NewFilterBuilder()
	if opts.ScaleMode == ScaleStretch {
		fb.Scale(width, height)
	} else {
		fb.ScalePad(width, height, opts.PadColor)
	}
	return fb.Build()
}

// targetDims picks the output dimensions: the maximum width and height across
// all clips, rounded up to even values for 4:2:0 encoding.
func targetDims(clips []*clip) (int, int) {
	width, height := 0, 0
	for _, c := range clips {
		if c.info.Width > width {
			width = c.info.Width
		}
		if c.info.Height > height {
			height = c.info.Height
		}
	}
	width += width % 2
	height += height % 2
	return width, height
}
