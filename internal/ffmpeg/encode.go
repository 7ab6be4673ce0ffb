package ffmpeg

import (
	"context"
	"fmt"
)

// EncodeSequence encodes a numbered image sequence into a single H.264 video
// at a fixed frame rate with a constant-quality target and a bitrate ceiling.
func (e *Executor) EncodeSequence(ctx context.Context, opts SequenceOptions) error {
	if opts.Pattern == "" {
		return fmt.Errorf("frame pattern is required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("fps must be positive")
	}

	e.logger.Info().
		Str("pattern", opts.Pattern).
		Str("output", opts.Output).
		Float64("fps", opts.FPS).
		Msg("encoding frame sequence")

	args := []string{
		"-framerate", fmt.Sprintf("%g", opts.FPS),
		"-i", opts.Pattern,
		"-c:v", DefaultVideoCodec,
	}

	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	args = append(args, "-crf", fmt.Sprintf("%d", crf))

	if opts.MaxRateKbps > 0 {
		args = append(args,
			"-maxrate", fmt.Sprintf("%dk", opts.MaxRateKbps),
			"-bufsize", fmt.Sprintf("%dk", 2*opts.MaxRateKbps),
		)
	}

	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	args = append(args, "-preset", preset)

	pixFmt := opts.PixelFormat
	if pixFmt == "" {
		pixFmt = DefaultPixFmt
	}
	args = append(args, "-pix_fmt", pixFmt)

	if opts.FastStart {
		args = append(args, "-movflags", "+faststart")
	}

	args = append(args, opts.Output)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("sequence encode")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("sequence encode failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("sequence encode complete")
	return nil
}
