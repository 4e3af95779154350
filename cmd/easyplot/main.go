// Package main provides the easyplot command, which opens an interactive
// plot window for a Lua scene script or renders it to a PNG file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"

	"github.com/opd-ai/go-easyplot/internal/profiling"
	"github.com/opd-ai/go-easyplot/pkg/easyplot"
)

// Version is the current version of easyplot.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

// envDefaults holds EASYPLOT_* variables. Command-line flags take
// precedence over them.
type envDefaults struct {
	Width    int     `envconfig:"WIDTH"`
	Height   int     `envconfig:"HEIGHT"`
	Scale    float64 `envconfig:"SCALE"`
	Debug    bool    `envconfig:"DEBUG"`
	Watch    bool    `envconfig:"WATCH"`
	Headless bool    `envconfig:"HEADLESS"`
}

func loadEnv() (envDefaults, error) {
	var env envDefaults
	if err := envconfig.Process("easyplot", &env); err != nil {
		return envDefaults{}, fmt.Errorf("environment: %w", err)
	}
	return env, nil
}

// cliConfig is the parsed command line.
type cliConfig struct {
	scenePath  string
	version    bool
	cpuProfile string
	memProfile string
	tracePath  string
	snapshot   string
	ratio      float64
	watch      bool
	debug      bool
	headless   bool
	width      int
	height     int
	scale      float64
}

func parseFlags(args []string, env envDefaults, output io.Writer) (cliConfig, error) {
	var cfg cliConfig
	fs := flag.NewFlagSet("easyplot", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.scenePath, "c", "", "Path to the Lua scene script")
	fs.BoolVar(&cfg.version, "v", false, "Print version and exit")
	fs.StringVar(&cfg.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&cfg.memProfile, "memprofile", "", "Write memory profile to file")
	fs.StringVar(&cfg.tracePath, "trace", "", "Write execution trace to file")
	fs.StringVar(&cfg.snapshot, "snapshot", "", "Render the scene to a PNG file and exit")
	fs.Float64Var(&cfg.ratio, "ratio", 1, "Device pixel ratio for -snapshot")
	fs.BoolVar(&cfg.watch, "watch", env.Watch, "Reload the scene when the file changes")
	fs.BoolVar(&cfg.debug, "debug", env.Debug, "Enable debug logging")
	fs.BoolVar(&cfg.headless, "headless", env.Headless, "Render offscreen instead of opening a window")
	fs.IntVar(&cfg.width, "width", env.Width, "Override the window width")
	fs.IntVar(&cfg.height, "height", env.Height, "Override the window height")
	fs.Float64Var(&cfg.scale, "scale", env.Scale, "Override the initial scale")
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if cfg.scenePath == "" && fs.NArg() > 0 {
		cfg.scenePath = fs.Arg(0)
	}
	return cfg, nil
}

func (c cliConfig) options() *easyplot.Options {
	opts := easyplot.DefaultOptions()
	opts.Width = c.width
	opts.Height = c.height
	opts.Scale = c.scale
	opts.Headless = c.headless
	opts.WatchScene = c.watch
	if c.debug {
		opts.Logger = easyplot.DebugLogger()
	} else {
		opts.Logger = easyplot.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	}
	return &opts
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	env, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid environment: %v\n", err)
		return 2
	}
	cfg, err := parseFlags(args, env, os.Stderr)
	if err != nil {
		return 2
	}

	if cfg.version {
		fmt.Printf("easyplot version %s\n", Version)
		return 0
	}

	profiler := profiling.New(profiling.Config{
		CPUProfilePath: cfg.cpuProfile,
		MemProfilePath: cfg.memProfile,
		TracePath:      cfg.tracePath,
	})
	if profiler.Config().Enabled() {
		if err := profiler.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	if cfg.scenePath == "" {
		fmt.Fprintln(os.Stderr, "No scene script specified. Use -c to specify a scene file.")
		fmt.Fprintln(os.Stderr, "Usage: easyplot -c <scene.lua> [-snapshot out.png]")
		return 1
	}

	p, err := easyplot.New(cfg.scenePath, cfg.options())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		return 1
	}

	if cfg.snapshot != "" {
		return runSnapshot(p, cfg)
	}
	return runInteractive(p)
}

// runSnapshot renders the scene once and writes it to cfg.snapshot.
func runSnapshot(p easyplot.Plot, cfg cliConfig) int {
	f, err := os.Create(cfg.snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating snapshot: %v\n", err)
		return 1
	}
	err = p.Snapshot(f, easyplot.SnapshotOptions{Ratio: cfg.ratio})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
		return 1
	}
	return 0
}

func runInteractive(p easyplot.Plot) int {
	p.SetErrorHandler(func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	})
	p.SetEventHandler(func(e easyplot.Event) {
		fmt.Printf("[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Message)
	})

	if err := p.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-p.Done():
			// window closed by the user
			return 0
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				fmt.Println("Received SIGHUP, reloading scene...")
				if err := p.Reload(); err != nil {
					fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
				}
				continue
			}
			fmt.Println("Shutting down...")
			if err := p.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Stop error: %v\n", err)
				return 1
			}
			return 0
		}
	}
}
