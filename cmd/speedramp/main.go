package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/DV0x/fashion-shoot-agent-sub003/internal/config"
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/grid"
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/logging"
	"github.com/DV0x/fashion-shoot-agent-sub003/internal/stitch"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "speedramp",
	Short: "speedramp - speed-curve video retiming and stitching",
	Long:  "Retimes generated clips through easing curves and stitches them into a single deliverable video.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./speedramp.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(stitchCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(curvesCmd)
	rootCmd.AddCommand(cropCmd)
}

var (
	stitchOutput     string
	stitchDuration   float64
	stitchEasing     string
	stitchFPS        float64
	stitchKeepFrames bool
	stitchScratch    string
	stitchStretch    bool
	stitchPadColor   string
)

var stitchCmd = &cobra.Command{
	Use:   "stitch [clips...]",
	Short: "Retime clips through an easing curve and stitch them into one video",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		s, err := stitch.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		mode := stitch.ScaleFitPad
		if stitchStretch {
			mode = stitch.ScaleStretch
		}

		out, err := s.Stitch(cmd.Context(), stitch.Options{
			Inputs:       args,
			Output:       stitchOutput,
			ClipDuration: stitchDuration,
			Easing:       stitchEasing,
			OutputFPS:    stitchFPS,
			KeepFrames:   stitchKeepFrames,
			ScratchDir:   stitchScratch,
			ScaleMode:    mode,
			PadColor:     stitchPadColor,
			ProgressFunc: func(p stitch.Progress) {
				log.Info().
					Int("clip", p.Clip+1).
					Int("clips", p.ClipCount).
					Int("frame", p.ClipFrame).
					Int("frames", p.ClipFrames).
					Msg("extracting")
			},
		})
		if err != nil {
			return err
		}

		log.Info().Str("output", out).Msg("stitch complete")
		return nil
	},
}

var (
	joinOutput   string
	joinReencode bool
)

var joinCmd = &cobra.Command{
	Use:   "join [videos...]",
	Short: "Concatenate rendered videos in order without retiming",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		s, err := stitch.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		if err := s.Join(cmd.Context(), args, joinOutput, joinReencode); err != nil {
			return err
		}

		log.Info().Str("output", joinOutput).Msg("join complete")
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [video]",
	Short: "Print source video metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		s, err := stitch.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		info, err := s.Probe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %dx%d, %.3f fps, %.3fs, %s\n",
			info.FilePath, info.Width, info.Height, info.FPS, info.Duration, info.VideoCodec)
		return nil
	},
}

var curvesCmd = &cobra.Command{
	Use:   "curves",
	Short: "List available easing curves",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		s, err := stitch.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		for _, name := range s.Curves() {
			fmt.Println(name)
		}
		return nil
	},
}

var (
	cropRows   int
	cropCols   int
	cropOutDir string
	cropCellW  int
	cropCellH  int
)

var cropCmd = &cobra.Command{
	Use:   "crop [image]",
	Short: "Split a composite grid image into cell images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := grid.New(log.Logger)

		paths, err := c.Crop(args[0], cropRows, cropCols, cropOutDir, grid.Options{
			CellWidth:  cropCellW,
			CellHeight: cropCellH,
		})
		if err != nil {
			return err
		}

		log.Info().Int("cells", len(paths)).Str("dir", cropOutDir).Msg("crop complete")
		return nil
	},
}

func init() {
	stitchCmd.Flags().StringVarP(&stitchOutput, "output", "o", "", "output video path (required)")
	stitchCmd.Flags().Float64VarP(&stitchDuration, "duration", "d", 0, "retimed duration per clip in seconds (default 1.5)")
	stitchCmd.Flags().StringVarP(&stitchEasing, "easing", "e", "", "easing curve name or \"p1x,p1y,p2x,p2y\" bezier controls")
	stitchCmd.Flags().Float64Var(&stitchFPS, "fps", 0, "output frame rate (default 60)")
	stitchCmd.Flags().BoolVar(&stitchKeepFrames, "keep-frames", false, "retain scratch frames for debugging")
	stitchCmd.Flags().StringVar(&stitchScratch, "scratch-dir", "", "scratch directory override")
	stitchCmd.Flags().BoolVar(&stitchStretch, "stretch", false, "stretch to output dimensions instead of scale-and-pad")
	stitchCmd.Flags().StringVar(&stitchPadColor, "pad-color", "", "fill color for padded bars (default black)")
	stitchCmd.MarkFlagRequired("output")

	joinCmd.Flags().StringVarP(&joinOutput, "output", "o", "", "output video path (required)")
	joinCmd.Flags().BoolVar(&joinReencode, "reencode", false, "re-encode instead of stream copy")
	joinCmd.MarkFlagRequired("output")

	cropCmd.Flags().IntVar(&cropRows, "rows", 2, "grid rows")
	cropCmd.Flags().IntVar(&cropCols, "cols", 2, "grid columns")
	cropCmd.Flags().StringVarP(&cropOutDir, "out-dir", "o", "cells", "directory for cell images")
	cropCmd.Flags().IntVar(&cropCellW, "cell-width", 0, "resize cells to this width")
	cropCmd.Flags().IntVar(&cropCellH, "cell-height", 0, "resize cells to this height")
}
