package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/trace"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/colinrgodsey/heatgrid/config"
	"github.com/colinrgodsey/heatgrid/interpolation"
	"github.com/colinrgodsey/heatgrid/pipeline"
	"github.com/colinrgodsey/heatgrid/render"
	"github.com/colinrgodsey/heatgrid/samples"
)

var (
	configPath string

	samplesPath string
	gridSize    int
	workers     int
	threads     int
	power       float64
	method      string
	neighbors   int
	renderMode  string
	metricsAddr string

	doTrace bool
	doProf  bool
)

func main() {
	flag.StringVar(&configPath, "config", "", "Path to HJSON or YAML config file")
	flag.StringVar(&samplesPath, "samples", "", "Path to the sampled points file (CSV or JSON)")
	flag.IntVar(&gridSize, "size", 0, "Grid size, prompted for when unset")
	flag.IntVar(&workers, "workers", 0, "Number of workers (default 2); workers beyond the grid size get no rows")
	flag.IntVar(&threads, "threads", 0, "Estimation threads per worker")
	flag.Float64Var(&power, "power", 0, "IDW power parameter")
	flag.StringVar(&method, "method", "", "Interpolation method (idw, idw-nearest, microsphere)")
	flag.IntVar(&neighbors, "neighbors", 0, "Neighbors used by idw-nearest")
	flag.StringVar(&renderMode, "render", "", "Console rendering (ansi, truecolor, none)")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")

	flag.BoolVar(&doTrace, "trace", false, "Enable tracing (debug)")
	flag.BoolVar(&doProf, "prof", false, "Enable profiling (debug)")
	flag.Parse()

	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := conf.NewLogger(os.Stderr).With("run", uuid.New().String())
	slog.SetDefault(log)

	if err := run(conf, log); err != nil {
		log.Error("heatgrid failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags that were set
// on the command line over it.
func loadConfig() (conf config.Config, err error) {
	if conf, err = config.LoadConfig(configPath); err != nil {
		return
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			conf.SamplesPath = samplesPath
		case "size":
			conf.GridSize = gridSize
		case "workers":
			conf.Workers = workers
		case "threads":
			conf.Threads = threads
		case "power":
			conf.Power = power
		case "method":
			conf.Method = method
		case "neighbors":
			conf.Neighbors = neighbors
		case "render":
			conf.Render = renderMode
		case "metrics-addr":
			conf.MetricsAddr = metricsAddr
		}
	})

	err = conf.Validate()
	return
}

func run(conf config.Config, log *slog.Logger) error {
	if doTrace {
		if err := trace.Start(os.Stderr); err != nil {
			return err
		}
		defer trace.Stop()
	}
	if doProf {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.MetricsAddr != "" {
		srv := serveMetrics(conf.MetricsAddr, log)
		defer srv.Close()
	}

	opts, err := consoleOptions(conf)
	if err != nil {
		return err
	}
	console := render.NewConsole(os.Stdout, opts)

	source := pipeline.StaticSpec(conf.GridSize)
	if conf.GridSize == 0 {
		source = pipeline.PromptSpec(os.Stdin, os.Stdout)
	}
	m, _ := interpolation.ParseMethod(conf.Method)

	sum, err := pipeline.Run(ctx, pipeline.Options{
		Workers: conf.Workers,
		Source:  source,
		Worker: pipeline.WorkerOptions{
			Load:      pipeline.FileLoader(conf.SamplesPath),
			Method:    m,
			Power:     conf.Power,
			Neighbors: conf.Neighbors,
			Threads:   conf.Threads,
		},
		Logger: log,
	}, console)
	if err != nil {
		return err
	}
	if err := console.Err(); err != nil {
		return fmt.Errorf("writing grid: %w", err)
	}

	log.Info("grid complete",
		"size", sum.Spec.Size,
		"workers", len(sum.Workers),
		"cells", sum.Cells,
		"uncovered", sum.Uncovered.Len(),
		"elapsed", sum.Elapsed,
	)
	return nil
}

// consoleOptions scales the truecolor gradient to the sample values. The
// workers read the samples again on their own.
func consoleOptions(conf config.Config) (opts render.Options, err error) {
	if opts.Mode, err = render.ParseMode(conf.Render); err != nil {
		return
	}
	opts.Bands = render.Bands{Cold: conf.ColorBands.Cold, Mild: conf.ColorBands.Mild}
	opts.Banner = conf.Banner

	if opts.Mode != render.ModeTrueColor {
		return
	}
	set, err := samples.LoadFile(conf.SamplesPath)
	if err != nil {
		return
	}
	opts.Low, opts.High, _ = set.Range()
	return
}

func serveMetrics(addr string, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	log.Info("serving metrics", "addr", addr)
	return srv
}
