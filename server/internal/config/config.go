package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort    = 8050
	DefaultDataPath    = "spacex_launch_dash.csv"
	DefaultTitle       = "SpaceX Launch Records Dashboard"
	DefaultSliderMin   = 0
	DefaultSliderMax   = 10000
	DefaultSliderStep  = 1000
	DefaultChartWidth  = 800
	DefaultChartHeight = 500
)

// DefaultSliderMarks are the labelled ticks on the payload slider.
var DefaultSliderMarks = []float64{2500, 5000, 7500}

// Config holds the launchdash configuration parsed from config.yaml.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig holds HTTP serving settings.
type ServerConfig struct {
	// HTTPPort is the port for the UI, REST API, WebSocket hub and /metrics (default 8050).
	HTTPPort int `yaml:"http_port"`

	// UIDir, when set, serves the UI from this directory instead of the
	// embedded page.
	UIDir string `yaml:"ui_dir"`

	// Auth configures how the server authenticates API and WebSocket clients.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig controls client authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	// Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// DataConfig locates the launch CSV.
type DataConfig struct {
	// Path is the CSV file loaded at startup (default spacex_launch_dash.csv).
	Path string `yaml:"path"`

	// Watch reloads the dataset when the file changes. Off by default: the
	// dataset is normally loaded once for the lifetime of the process.
	Watch bool `yaml:"watch"`

	// Columns overrides the CSV header names. Empty fields keep the defaults.
	Columns ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig names the CSV header of each required field.
type ColumnsConfig struct {
	LaunchSite      string `yaml:"launch_site"`
	PayloadMass     string `yaml:"payload_mass"`
	Class           string `yaml:"class"`
	BoosterCategory string `yaml:"booster_category"`
}

// DashboardConfig controls the page layout.
type DashboardConfig struct {
	Title  string       `yaml:"title"`
	Slider SliderConfig `yaml:"slider"`
	Chart  ChartConfig  `yaml:"chart"`
}

// SliderConfig bounds the payload range slider, in kilograms.
type SliderConfig struct {
	Min   float64   `yaml:"min"`
	Max   float64   `yaml:"max"`
	Step  float64   `yaml:"step"`
	Marks []float64 `yaml:"marks"`
}

// ChartConfig sets the size of rendered charts in pixels.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return defaults()
}

// Load reads and parses the config file at path.
// Missing fields are filled with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
		},
		Data: DataConfig{
			Path: DefaultDataPath,
		},
		Dashboard: DashboardConfig{
			Title: DefaultTitle,
			Slider: SliderConfig{
				Min:   DefaultSliderMin,
				Max:   DefaultSliderMax,
				Step:  DefaultSliderStep,
				Marks: append([]float64(nil), DefaultSliderMarks...),
			},
			Chart: ChartConfig{
				Width:  DefaultChartWidth,
				Height: DefaultChartHeight,
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Data.Path == "" {
		return fmt.Errorf("data.path must not be empty")
	}
	s := cfg.Dashboard.Slider
	if s.Min < 0 || s.Min >= s.Max {
		return fmt.Errorf("dashboard.slider: want 0 <= min < max, got [%v, %v]", s.Min, s.Max)
	}
	if s.Step <= 0 {
		return fmt.Errorf("dashboard.slider.step must be positive")
	}
	for _, m := range s.Marks {
		if m < s.Min || m > s.Max {
			return fmt.Errorf("dashboard.slider.marks: %v outside [%v, %v]", m, s.Min, s.Max)
		}
	}
	if cfg.Dashboard.Chart.Width <= 0 || cfg.Dashboard.Chart.Height <= 0 {
		return fmt.Errorf("dashboard.chart: width and height must be positive")
	}
	return nil
}
