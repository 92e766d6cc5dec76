package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"bookscatter/internal/dataset"
	"bookscatter/internal/palette"
)

// FileName is the config file looked up in the config directory.
const FileName = configName + ".json"

const configName = "bookscatter"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Env holds process environment overrides.
type Env struct {
	ConfigDir string `env:"BOOKSCATTER_CONFIG_DIR" envDefault:"."`
	DataPath  string `env:"BOOKSCATTER_DATA"`
	LogLevel  string `env:"BOOKSCATTER_LOG_LEVEL"`
	LogFile   string `env:"BOOKSCATTER_LOG_FILE"`
	Graylog   string `env:"BOOKSCATTER_GRAYLOG"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Margin is the gap between the canvas edge and the plotted range, in canvas
// units. Only the extent domain mode uses it.
type Margin struct {
	Top    float64 `mapstructure:"top"`
	Bottom float64 `mapstructure:"bottom"`
	Left   float64 `mapstructure:"left"`
	Right  float64 `mapstructure:"right"`
}

type Canvas struct {
	WidthFraction  float64 `mapstructure:"widthFraction"`
	HeightFraction float64 `mapstructure:"heightFraction"`
	Margin         Margin  `mapstructure:"margin"`
	Padding        float64 `mapstructure:"padding"`
}

// Domain selects how the data-space domain is chosen: "fixed" uses X and Y,
// "extent" uses the min/max of the loaded records.
type Domain struct {
	Mode string    `mapstructure:"mode"`
	X    []float64 `mapstructure:"x"`
	Y    []float64 `mapstructure:"y"`
}

type Zoom struct {
	ScaleMin     float64 `mapstructure:"scaleMin"`
	ScaleMax     float64 `mapstructure:"scaleMax"`
	TranslatePad float64 `mapstructure:"translatePad"`
}

type Transition struct {
	Enter time.Duration `mapstructure:"enter"`
	Pulse time.Duration `mapstructure:"pulse"`
	Exit  time.Duration `mapstructure:"exit"`
	FPS   int           `mapstructure:"fps"`
}

type Palette struct {
	Categories []string `mapstructure:"categories"`
	Colors     []string `mapstructure:"colors"`
	Unknown    string   `mapstructure:"unknown"`
}

// Settings is a validated snapshot of the configuration.
type Settings struct {
	LogLevel string `mapstructure:"logLevel"`
	LogFile  string `mapstructure:"logFile"`
	// Graylog is a GELF UDP host:port; empty disables it.
	Graylog string `mapstructure:"logGraylog"`
	Data    struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"data"`
	Canvas Canvas `mapstructure:"canvas"`
	Mark   struct {
		Radius float64 `mapstructure:"radius"`
	} `mapstructure:"mark"`
	Domain Domain `mapstructure:"domain"`
	Zoom   Zoom   `mapstructure:"zoom"`
	Axis   struct {
		Ticks int `mapstructure:"ticks"`
	} `mapstructure:"axis"`
	Transition Transition `mapstructure:"transition"`
	Palette    Palette    `mapstructure:"palette"`
}

// FrameInterval is the delay between animation frames.
func (s Settings) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.Transition.FPS)
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "bookscatter.log")
	viper.SetDefault("logGraylog", "")

	viper.SetDefault("data.path", "data/book_vectors_no_vector.json")

	viper.SetDefault("canvas.widthFraction", 0.7)
	viper.SetDefault("canvas.heightFraction", 0.7)
	viper.SetDefault("canvas.margin.top", 20)
	viper.SetDefault("canvas.margin.bottom", 60)
	viper.SetDefault("canvas.margin.left", 60)
	viper.SetDefault("canvas.margin.right", 40)
	viper.SetDefault("canvas.padding", 10)

	viper.SetDefault("mark.radius", 5)

	viper.SetDefault("domain.mode", "fixed")
	viper.SetDefault("domain.x", []float64{-200, 200})
	viper.SetDefault("domain.y", []float64{-200, 200})

	viper.SetDefault("zoom.scaleMin", 0.5)
	viper.SetDefault("zoom.scaleMax", 5)
	viper.SetDefault("zoom.translatePad", 100)

	viper.SetDefault("axis.ticks", 10)

	viper.SetDefault("transition.enter", time.Second)
	viper.SetDefault("transition.pulse", 250*time.Millisecond)
	viper.SetDefault("transition.exit", time.Second)
	viper.SetDefault("transition.fps", 30)

	viper.SetDefault("palette.categories", dataset.DefaultGenres)
	viper.SetDefault("palette.colors", palette.Set3)
	viper.SetDefault("palette.unknown", palette.Unknown)
}

// Load reads FileName from e.ConfigDir on top of the defaults, applies the
// environment overrides and validates the result. A missing file is not an
// error; a malformed one is.
func Load(e Env) (Settings, error) {
	setDefaults()

	dir := e.ConfigDir
	if dir == "" {
		dir = "."
	}
	viper.SetConfigName(configName)
	viper.SetConfigType("json")
	viper.AddConfigPath(dir)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if e.DataPath != "" {
		viper.Set("data.path", e.DataPath)
	}
	if e.LogLevel != "" {
		viper.Set("logLevel", e.LogLevel)
	}
	if e.LogFile != "" {
		viper.Set("logFile", e.LogFile)
	}
	if e.Graylog != "" {
		viper.Set("logGraylog", e.Graylog)
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ConfigFileUsed returns the path of the file Load read, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// Validate checks ranges that the rest of the program relies on.
func (s Settings) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
	}
	fraction := func(v float64) bool { return v > 0 && v <= 1 }

	switch {
	case !fraction(s.Canvas.WidthFraction):
		return invalid("canvas.widthFraction must be in (0, 1], got %v", s.Canvas.WidthFraction)
	case !fraction(s.Canvas.HeightFraction):
		return invalid("canvas.heightFraction must be in (0, 1], got %v", s.Canvas.HeightFraction)
	case s.Canvas.Padding < 0:
		return invalid("canvas.padding must not be negative")
	case s.Mark.Radius <= 0:
		return invalid("mark.radius must be positive, got %v", s.Mark.Radius)
	case s.Zoom.ScaleMin <= 0 || s.Zoom.ScaleMin > s.Zoom.ScaleMax:
		return invalid("zoom scale range [%v, %v] is empty", s.Zoom.ScaleMin, s.Zoom.ScaleMax)
	case s.Zoom.TranslatePad < 0:
		return invalid("zoom.translatePad must not be negative")
	case s.Axis.Ticks < 1:
		return invalid("axis.ticks must be at least 1")
	case s.Transition.FPS < 1:
		return invalid("transition.fps must be at least 1")
	case s.Transition.Enter < 0 || s.Transition.Pulse < 0 || s.Transition.Exit < 0:
		return invalid("transition durations must not be negative")
	}

	switch strings.ToLower(s.Domain.Mode) {
	case "fixed":
		for name, d := range map[string][]float64{"domain.x": s.Domain.X, "domain.y": s.Domain.Y} {
			if len(d) != 2 || math.IsNaN(d[0]) || math.IsNaN(d[1]) || math.IsInf(d[0], 0) || math.IsInf(d[1], 0) {
				return invalid("%s must be two finite numbers", name)
			}
		}
	case "extent":
	default:
		return invalid("domain.mode must be fixed or extent, got %q", s.Domain.Mode)
	}
	return nil
}
