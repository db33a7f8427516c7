package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"videocolors/internal/colortrack"
	"videocolors/internal/config"
	"videocolors/internal/decode"
	"videocolors/internal/logger"
	"videocolors/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	var debug int
	return &cli.Command{
		Name:      "colortrack",
		Usage:     "Extract one representative color per second of video",
		ArgsUsage: "<video or directory>...",

		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (.json, .png, .jpg, .txt); defaults to <input>.json. Single input only",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Turn debugging information on (repeat for more)",
				Config:  cli.BoolConfig{Count: &debug},
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Maximum concurrent decoders (0 = CPUs - 1)",
			},
			&cli.StringFlag{
				Name:  "executor",
				Usage: "Concurrency strategy: pool or forkjoin",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Color mode: mean or dominant",
			},
			&cli.IntFlag{
				Name:  "min-chunk-seconds",
				Usage: "Minimum seconds of footage per worker chunk",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file with extraction settings; flags override it",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Do not draw a progress bar",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "Barcode height in pixels for image outputs",
				Value: 100,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return cli.Exit("at least one input is required", 2)
			}

			log, err := logger.NewConsole(debug)
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg, err := configFromFlags(cmd)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			inputs, err := resolveInputs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			out := cmd.String("output")
			if out != "" && len(inputs) != 1 {
				return cli.Exit("--output needs exactly one input video", 2)
			}

			log.Debug("configuration",
				zap.Int("workers", cfg.EffectiveWorkers()),
				zap.String("executor", cfg.Executor),
				zap.String("mode", cfg.ColorMode),
				zap.Int("debug", debug),
			)

			start := time.Now()
			for _, input := range inputs {
				dest := out
				if dest == "" {
					dest = output.DefaultPath(input)
				}
				var bar *chunkBar
				if !cmd.Bool("no-progress") {
					bar = &chunkBar{desc: filepath.Base(input)}
				}
				pipeline, err := newPipeline(cfg, log, bar)
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				err = extractOne(ctx, log, pipeline, input, dest, cmd.Int("height"))
				bar.finish()
				if err != nil {
					return err
				}
			}
			log.Info("done", zap.Int("videos", len(inputs)), zap.Duration("elapsed", time.Since(start)))
			return nil
		},
	}
}

// configFromFlags starts from the environment and applies any flag the user
// set explicitly.
func configFromFlags(cmd *cli.Command) (*config.Config, error) {
	load := config.Load
	if path := cmd.String("config"); path != "" {
		load = func() (*config.Config, error) { return config.LoadFile(path) }
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("executor") {
		cfg.Executor = cmd.String("executor")
	}
	if cmd.IsSet("mode") {
		cfg.ColorMode = cmd.String("mode")
	}
	if cmd.IsSet("min-chunk-seconds") {
		cfg.MinChunkSeconds = cmd.Int("min-chunk-seconds")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newPipeline(cfg *config.Config, log *zap.Logger, bar *chunkBar) (*colortrack.Pipeline, error) {
	colors, err := cfg.Extractor()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.PipelineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, colortrack.WithLogger(log))
	if bar != nil {
		opts = append(opts, colortrack.WithProgress(bar.update))
	}
	return colortrack.New(decode.NewOpener(decode.WithLogger(log)), colors, opts...), nil
}

// chunkBar draws chunk completion on stderr. The chunk count is only known
// once the video has been probed, so the bar is created on the first update.
type chunkBar struct {
	desc string
	once sync.Once
	bar  *progressbar.ProgressBar
}

func (b *chunkBar) update(done, total int) {
	b.once.Do(func() {
		b.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(b.desc),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
	})
	_ = b.bar.Add(1)
}

func (b *chunkBar) finish() {
	if b == nil || b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}

// resolveInputs expands directories into the video files they contain.
func resolveInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		videos, err := decode.FindVideos(arg, false)
		if err != nil {
			return nil, fmt.Errorf("read video directory: %w", err)
		}
		if len(videos) == 0 {
			return nil, fmt.Errorf("no video files found in %s", arg)
		}
		inputs = append(inputs, videos...)
	}
	return inputs, nil
}

func extractOne(ctx context.Context, log *zap.Logger, pipeline *colortrack.Pipeline, input, dest string, height int) error {
	log.Info("extracting colors", zap.String("input", input))
	start := time.Now()

	track, err := pipeline.Extract(ctx, input)
	if err != nil {
		return fmt.Errorf("extract colors for %s: %w", input, err)
	}
	if err := output.Write(track, dest, output.Options{Height: height}); err != nil {
		return err
	}

	log.Info("colors written",
		zap.String("output", dest),
		zap.Int("colors", len(track)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if n := len(track); n > 0 {
		log.Debug("track summary",
			zap.String("first", track[0].Hex()),
			zap.String("last", track[n-1].Hex()),
		)
	}
	return nil
}
