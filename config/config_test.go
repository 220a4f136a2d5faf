package config

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soocke/pixel-locate-go/domain/match"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Looseness != 0 || cfg.Workers != 1 || cfg.IncludeEdges {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.Region().Empty() {
		t.Fatalf("default region should be empty")
	}
}

func TestValidate_NormalisesSoftFields(t *testing.T) {
	cfg := &Config{Workers: -3, PollIntervalMS: 0, Display: -1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Workers != 1 || cfg.PollInterval() != 250*time.Millisecond || cfg.Display != 0 || cfg.Backend == "" || cfg.Prefilter != "anchor" {
		t.Fatalf("soft fields not normalised: %+v", cfg)
	}
}

func TestValidate_RejectsInvalidLooseness(t *testing.T) {
	for _, l := range []float64{-0.1, 1.5} {
		cfg := DefaultConfig()
		cfg.Looseness = l
		if err := cfg.Validate(); !errors.Is(err, match.ErrInvalidLooseness) {
			t.Fatalf("looseness %v: expected ErrInvalidLooseness, got %v", l, err)
		}
	}
	cfg := DefaultConfig()
	cfg.Prefilter = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown prefilter")
	}
}

func TestRegion_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	r := image.Rect(10, 20, 110, 70)
	cfg.SetRegion(r)
	if cfg.Region() != r {
		t.Fatalf("expected %v, got %v", r, cfg.Region())
	}
}

func TestMatchOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Looseness = 0.1
	cfg.Workers = 4
	cfg.IncludeEdges = true
	cfg.Prefilter = "row"
	opts, err := cfg.MatchOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Looseness != 0.1 || opts.Workers != 4 || !opts.IncludeEdges {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, ok := opts.Prefilter.(match.RowPrefilter); !ok {
		t.Fatalf("expected RowPrefilter, got %T", opts.Prefilter)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Prefilter != "anchor" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Looseness = 0.05
	cfg.Workers = 3
	cfg.SetRegion(image.Rect(1, 2, 3, 4))
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("expected %+v, got %+v", cfg, got)
	}
}

func TestLoad_BadContent(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected decode error")
	}
	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"looseness": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(invalid)
	if !errors.Is(err, match.ErrInvalidLooseness) {
		t.Fatalf("expected ErrInvalidLooseness, got %v", err)
	}
	if cfg.Looseness != 0 {
		t.Fatalf("expected defaults on invalid file, got %+v", cfg)
	}
}

func TestLoad_OpenErrorIsPrefixed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(filepath.Join(file, "config.json"))
	if err == nil || !strings.HasPrefix(err.Error(), "config: open ") {
		t.Fatalf("expected config: open error, got %v", err)
	}
}
