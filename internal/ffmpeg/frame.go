package ffmpeg

import (
	"context"
	"fmt"

	"github.com/DV0x/fashion-shoot-agent-sub003/pkg/util"
)

// ExtractFrame seeks to a source timestamp and decodes exactly one frame into
// an image file, optionally through a scale filter.
func (e *Executor) ExtractFrame(ctx context.Context, opts FrameOptions) error {
	if opts.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Timestamp < 0 {
		return fmt.Errorf("timestamp cannot be negative")
	}

	// -ss before -i: keyframe seek first, then decode forward to the target.
	args := []string{
		"-ss", util.FormatSeconds(opts.Timestamp),
		"-i", opts.Input,
		"-frames:v", "1",
	}
	if opts.Filter != "" {
		args = append(args, "-vf", opts.Filter)
	}
	args = append(args, opts.Output)

	runOpts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("frame extraction")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("frame extraction at %s failed: %w", util.FormatSeconds(opts.Timestamp), err)
	}
	if !util.FileExists(opts.Output) {
		return fmt.Errorf("frame extraction at %s produced no output", util.FormatSeconds(opts.Timestamp))
	}
	return nil
}
