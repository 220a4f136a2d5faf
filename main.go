package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/soocke/pixel-locate-go/config"
	"github.com/soocke/pixel-locate-go/domain/capture"
	"github.com/soocke/pixel-locate-go/images"
	"github.com/soocke/pixel-locate-go/locator"
)

// Exit codes. A search that completes without a match is not an error.
const (
	exitFound    = 0
	exitError    = 1
	exitNotFound = 2
)

type options struct {
	configPath string
	targetPath string
	sourcePath string
	savePath   string
	region     string
	wait       time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("pixel-locate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	cfg := config.DefaultConfig()

	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON config file.")
	fs.StringVarP(&opts.targetPath, "target", "t", "", "Image to look for (required).")
	fs.StringVarP(&opts.sourcePath, "source", "s", "", "Image to search in. Captures the screen when empty.")
	fs.StringVarP(&opts.savePath, "save-match", "o", "", "Write the matched region to this file.")
	fs.StringVarP(&opts.region, "region", "r", "", "Search only x,y,w,h of the source or screen.")
	fs.DurationVarP(&opts.wait, "wait", "w", 0, "Poll the screen until the target appears or this long has passed.")
	fs.Float64VarP(&cfg.Looseness, "looseness", "l", cfg.Looseness, "Per-channel tolerance in [0, 1]; 0 demands exact pixels.")
	fs.IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "Goroutines scanning candidate rows.")
	fs.BoolVar(&cfg.IncludeEdges, "include-edges", cfg.IncludeEdges, "Also try offsets flush with the right and bottom edges.")
	fs.StringVar(&cfg.Prefilter, "prefilter", cfg.Prefilter, "Cheap rejection test: anchor, row or none.")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Capture backend: screenshot, display or gdi.")
	fs.IntVar(&cfg.Display, "display", cfg.Display, "Monitor index for the display backend.")
	fs.IntVar(&cfg.PollIntervalMS, "poll-ms", cfg.PollIntervalMS, "Milliseconds between captures while waiting.")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitFound
		}
		return exitError
	}

	if opts.configPath != "" {
		fileCfg, err := config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Configuration error: %v\n", err)
			return exitError
		}
		applyFlags(fs, fileCfg, cfg)
		cfg = fileCfg
	}
	if opts.region != "" {
		r, err := images.ParseRect(opts.region)
		if err != nil {
			fmt.Fprintf(stderr, "Configuration error: %v\n", err)
			return exitError
		}
		cfg.SetRegion(r)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitError
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(stderr, level)

	at, size, found, err := locate(cfg, opts, logger)
	if err != nil {
		logger.Error("locate failed", "error", err)
		return exitError
	}
	if !found {
		fmt.Fprintln(stdout, "not found")
		return exitNotFound
	}
	fmt.Fprintf(stdout, "%d %d\n", at.X, at.Y)
	logger.Info("locate.found", "x", at.X, "y", at.Y, "width", size.X, "height", size.Y)
	return exitFound
}

// applyFlags copies the flags set on the command line from flagCfg to cfg
// so they take precedence over the config file.
func applyFlags(fs *pflag.FlagSet, cfg, flagCfg *config.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "looseness":
			cfg.Looseness = flagCfg.Looseness
		case "workers":
			cfg.Workers = flagCfg.Workers
		case "include-edges":
			cfg.IncludeEdges = flagCfg.IncludeEdges
		case "prefilter":
			cfg.Prefilter = flagCfg.Prefilter
		case "backend":
			cfg.Backend = flagCfg.Backend
		case "display":
			cfg.Display = flagCfg.Display
		case "poll-ms":
			cfg.PollIntervalMS = flagCfg.PollIntervalMS
		case "debug":
			cfg.Debug = flagCfg.Debug
		}
	})
}

// locate runs the search described by cfg and opts. It returns the match
// position and the target size.
func locate(cfg *config.Config, opts options, logger *slog.Logger) (image.Point, image.Point, bool, error) {
	if opts.targetPath == "" {
		return image.Point{}, image.Point{}, false, errors.New("no target image given (--target)")
	}
	target, err := images.Load(opts.targetPath)
	if err != nil {
		return image.Point{}, image.Point{}, false, err
	}
	size := target.Bounds().Size()
	matchOpts, err := cfg.MatchOptions()
	if err != nil {
		return image.Point{}, size, false, err
	}

	if opts.sourcePath != "" {
		source, err := images.Load(opts.sourcePath)
		if err != nil {
			return image.Point{}, size, false, err
		}
		l, err := locator.New(nil, matchOpts, logger)
		if err != nil {
			return image.Point{}, size, false, err
		}
		at, found, err := l.FindInImage(source, target, cfg.Region())
		if err == nil && found && opts.savePath != "" {
			err = saveMatch(opts.savePath, func(r image.Rectangle) (image.Image, error) { return images.Region(source, r) }, at, size)
		}
		return at, size, found, err
	}

	screen, err := capture.NewScreen(cfg.Backend, cfg.Display)
	if err != nil {
		return image.Point{}, size, false, err
	}
	l, err := locator.New(screen, matchOpts, logger)
	if err != nil {
		return image.Point{}, size, false, err
	}
	var at image.Point
	var found bool
	switch {
	case opts.wait > 0:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, opts.wait)
		defer cancel()
		at, found, err = l.WaitOnScreen(ctx, target, cfg.Region(), cfg.PollInterval())
	case cfg.Region().Empty():
		at, found, err = l.FindOnScreen(target)
	default:
		at, found, err = l.FindInRegion(target, cfg.Region())
	}
	if err == nil && found && opts.savePath != "" {
		err = saveMatch(opts.savePath, func(r image.Rectangle) (image.Image, error) { return capture.CaptureArea(screen, r) }, at, size)
	}
	return at, size, found, err
}

func saveMatch(path string, grab func(image.Rectangle) (image.Image, error), at, size image.Point) error {
	img, err := grab(image.Rectangle{Min: at, Max: at.Add(size)})
	if err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return images.Save(img, path)
}
