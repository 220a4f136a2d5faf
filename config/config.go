package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/soocke/pixel-locate-go/domain/capture"
	"github.com/soocke/pixel-locate-go/domain/match"
)

// Config holds runtime configuration for matching and capture.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`
	// Matching parameters
	Looseness    float64 `json:"looseness"`
	IncludeEdges bool    `json:"include_edges"`
	Prefilter    string  `json:"prefilter"`
	Workers      int     `json:"workers"`

	// Capture parameters
	Backend        string `json:"backend"`
	Display        int    `json:"display"`
	PollIntervalMS int    `json:"poll_interval_ms"`

	// Optional search region in screen (or source image) coordinates.
	RegionX int `json:"region_x"`
	RegionY int `json:"region_y"`
	RegionW int `json:"region_w"`
	RegionH int `json:"region_h"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		Looseness:      0.0,
		IncludeEdges:   false,
		Prefilter:      "anchor",
		Workers:        1,
		Backend:        capture.BackendScreenshot,
		Display:        0,
		PollIntervalMS: 250,
	}
}

// Validate normalises soft settings to safe values and rejects settings
// that would change search results if silently corrected.
func (c *Config) Validate() error {
	if _, err := match.NewTolerance(c.Looseness); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := match.PrefilterByName(c.Prefilter); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Prefilter == "" {
		c.Prefilter = "anchor"
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Backend == "" {
		c.Backend = capture.BackendScreenshot
	}
	if c.Display < 0 {
		c.Display = 0
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = 250
	}
	if c.RegionW < 0 || c.RegionH < 0 {
		return fmt.Errorf("config: negative region size %dx%d", c.RegionW, c.RegionH)
	}
	return nil
}

// Region returns the configured search region, or an empty rectangle when
// none is set.
func (c *Config) Region() image.Rectangle {
	if c.RegionW == 0 || c.RegionH == 0 {
		return image.Rectangle{}
	}
	return image.Rect(c.RegionX, c.RegionY, c.RegionX+c.RegionW, c.RegionY+c.RegionH)
}

// SetRegion stores r as the search region.
func (c *Config) SetRegion(r image.Rectangle) {
	c.RegionX, c.RegionY = r.Min.X, r.Min.Y
	c.RegionW, c.RegionH = r.Dx(), r.Dy()
}

// PollInterval returns the delay between screen captures while waiting.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// MatchOptions converts the matching settings for the matcher.
func (c *Config) MatchOptions() (match.Options, error) {
	pf, err := match.PrefilterByName(c.Prefilter)
	if err != nil {
		return match.Options{}, fmt.Errorf("config: %w", err)
	}
	return match.Options{
		Looseness:    c.Looseness,
		IncludeEdges: c.IncludeEdges,
		Prefilter:    pf,
		Workers:      c.Workers,
	}, nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON or validation error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
