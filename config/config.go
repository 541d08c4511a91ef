package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"

	"github.com/colinrgodsey/heatgrid/interpolation"
	"github.com/colinrgodsey/heatgrid/render"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	SamplesPath string     `json:"samples-path" yaml:"samples-path"`
	GridSize    int        `json:"grid-size" yaml:"grid-size"`
	Workers     int        `json:"workers" yaml:"workers"`
	Threads     int        `json:"threads" yaml:"threads"`
	Power       float64    `json:"power" yaml:"power"`
	Method      string     `json:"method" yaml:"method"`
	Neighbors   int        `json:"neighbors" yaml:"neighbors"`
	Render      string     `json:"render" yaml:"render"`
	Banner      bool       `json:"banner" yaml:"banner"`
	ColorBands  ColorBands `json:"color-bands" yaml:"color-bands"`
	MetricsAddr string     `json:"metrics-addr" yaml:"metrics-addr"`
	LogLevel    string     `json:"log-level" yaml:"log-level"`
	LogFormat   string     `json:"log-format" yaml:"log-format"`
}

// ColorBands are the upper bounds of the cold and mild console colors.
type ColorBands struct {
	Cold float64 `json:"cold" yaml:"cold"`
	Mild float64 `json:"mild" yaml:"mild"`
}

// defaultWorkers doesn't follow the host CPU count: with more workers
// than rows every worker gets an empty band.
const defaultWorkers = 2

// Default returns the settings used for anything a config file leaves out.
func Default() Config {
	return Config{
		SamplesPath: "sampled_points.csv",
		Workers:     defaultWorkers,
		Threads:     1,
		Power:       interpolation.DefaultPower,
		Method:      string(interpolation.MethodIDW),
		Render:      string(render.ModeANSI),
		Banner:      true,
		ColorBands:  ColorBands{Cold: 15, Mild: 25},
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// LoadConfig reads an HJSON (or YAML, by extension) file over Default.
// An empty path only returns the defaults.
func LoadConfig(path string) (conf Config, err error) {
	conf = Default()
	if path == "" {
		return
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(bytes, &conf); err != nil {
			err = fmt.Errorf("parsing %v: %w", path, err)
			return
		}
	default:
		var mdat map[string]interface{}
		if err = hjson.Unmarshal(bytes, &mdat); err != nil {
			err = fmt.Errorf("parsing %v: %w", path, err)
			return
		}
		if bytes, err = json.Marshal(mdat); err != nil {
			return
		}
		if err = json.Unmarshal(bytes, &conf); err != nil {
			err = fmt.Errorf("decoding %v: %w", path, err)
			return
		}
	}

	err = conf.Validate()
	return
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...))
		}
	}

	check(c.GridSize >= 0, "grid-size must not be negative, got %d", c.GridSize)
	check(c.Workers >= 1, "workers must be at least 1, got %d", c.Workers)
	check(c.Threads >= 0, "threads must not be negative, got %d", c.Threads)
	check(c.Power > 0 && !math.IsInf(c.Power, 0), "power must be positive and finite, got %v", c.Power)
	check(c.Neighbors >= 0, "neighbors must not be negative, got %d", c.Neighbors)
	check(c.ColorBands.Cold <= c.ColorBands.Mild, "color-bands cold (%v) above mild (%v)", c.ColorBands.Cold, c.ColorBands.Mild)
	check(c.LogFormat == "text" || c.LogFormat == "json", "log-format must be text or json, got %q", c.LogFormat)

	if _, err := interpolation.ParseMethod(c.Method); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if _, err := render.ParseMode(c.Render); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}
