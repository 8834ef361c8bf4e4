package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/philipparndt/surfseg/internal/config"
	"github.com/philipparndt/surfseg/internal/logging"
	"github.com/philipparndt/surfseg/pkg/mesh"
	"github.com/philipparndt/surfseg/pkg/output"
	"github.com/philipparndt/surfseg/pkg/pipeline"
	"github.com/philipparndt/surfseg/pkg/preview"
	"github.com/philipparndt/surfseg/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	segFlags config.Flags
	segWatch bool
)

var segmentCmd = &cobra.Command{
	Use:   "segment [file]",
	Short: "Segment a mesh and write the proximity-colored result",
	Long: `Segment a mesh into connected components and color every point by the
distance to the nearest point of another segment.

With --query-mode first all three vertices of a triangle are colored using the
distance measured from its first vertex.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)

	segmentCmd.Flags().StringVarP(&segFlags.Output, "output", "o", "", "Output file (.ply, .vtk or .json; default <input>_segments.ply)")
	segmentCmd.Flags().Float64VarP(&segFlags.Radius, "radius", "r", 0, "Adjacency radius for near-shared vertices (default 0.0025)")
	segmentCmd.Flags().StringVar(&segFlags.QueryMode, "query-mode", "", "Nearest-neighbor query position: own or first")
	segmentCmd.Flags().IntVarP(&segFlags.Workers, "workers", "w", 0, "Segments colored in parallel (-1 for one per CPU)")
	segmentCmd.Flags().StringVarP(&segFlags.Preview, "preview", "p", "", "Also render a preview image (.png or .webp)")
	segmentCmd.Flags().IntVar(&segFlags.PreviewSize, "preview-size", 0, "Preview width and height in pixels (default 800)")
	segmentCmd.Flags().BoolVar(&segWatch, "watch", false, "Re-run whenever the input file changes")
}

func runSegment(cmd *cobra.Command, args []string) error {
	filename := args[0]

	log, err := logging.New(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cfg, err := loadConfig(configFile, segFlags, filename)
	if err != nil {
		return err
	}

	if err := segmentFile(cmd.Context(), filename, cfg, log); err != nil {
		if !segWatch {
			return err
		}
		log.Error("segmentation failed", zap.Error(err))
	}

	if !segWatch {
		return nil
	}
	return watchFile(filename, cfg, log)
}

// loadConfig reads the optional config file and applies flag overrides for
// the given input file
func loadConfig(path string, flags config.Flags, filename string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg.Resolve(flags, filename)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// segmentFile runs one complete batch: load, segment, color and write
func segmentFile(ctx context.Context, filename string, cfg config.Config, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	model, diagnostics, err := mesh.Load(filename)
	for _, d := range diagnostics {
		log.Warn("skipped record", zap.Int("line", d.Line), zap.String("text", d.Text), zap.Error(d.Err))
	}
	if err != nil {
		return err
	}
	log.Info("mesh loaded",
		zap.String("file", filename),
		zap.Int("triangles", model.TriangleCount()),
		zap.Int("skipped", len(diagnostics)))

	opts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}
	opts.Logger = log

	result, err := pipeline.Run(ctx, model.Triangles, opts)
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}

	if err := output.Save(cfg.Output, result.Mesh); err != nil {
		return err
	}
	log.Info("output written", zap.String("file", cfg.Output))

	if cfg.Preview != "" {
		previewOpts := preview.DefaultOptions()
		previewOpts.Size = cfg.PreviewSize
		if err := preview.Save(cfg.Preview, preview.Render(result.Mesh, previewOpts)); err != nil {
			return err
		}
		log.Info("preview written", zap.String("file", cfg.Preview))
	}

	return nil
}

func watchFile(filename string, cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.New(500*time.Millisecond, log)
	if err != nil {
		return err
	}

	// Debounce timers may fire concurrently; runs must not overlap
	var mu sync.Mutex
	rerun := func(changed string) {
		mu.Lock()
		defer mu.Unlock()

		log.Info("input changed, re-running", zap.String("file", changed))
		if err := segmentFile(ctx, filename, cfg, log); err != nil {
			log.Error("segmentation failed", zap.Error(err))
		}
	}

	if err := fw.Watch([]string{filename}, rerun); err != nil {
		return err
	}

	log.Info("watching for changes, press Ctrl+C to stop", zap.String("file", filename))
	return fw.Run(ctx)
}
