package meshpatch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/meshpatch/distmatrix"
	"github.com/katalvlaran/meshpatch/logging"
	"github.com/katalvlaran/meshpatch/patch"
)

// ErrConfig wraps every configuration problem reported by LoadConfig and Validate.
var ErrConfig = errors.New("meshpatch: invalid configuration")

// Config drives an Extractor.
//
//	min_radius, max_radius – radius range of the patches (geodesic units)
//	patch_count            – patches per vertex, at least 2
//	workers                – concurrent single-source runs / patch builds; 0 = GOMAXPROCS
//	matrix_path            – optional distance matrix cache file
//	patches_path           – optional output file for the patch lists
//	compression            – matrix cache codec: none, lz4 or zstd
//	log_level              – debug, info, warn or error
type Config struct {
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	PatchCount  int     `yaml:"patch_count"`
	Workers     int     `yaml:"workers"`
	MatrixPath  string  `yaml:"matrix_path"`
	PatchesPath string  `yaml:"patches_path"`
	Compression string  `yaml:"compression"`
	LogLevel    string  `yaml:"log_level"`
}

// DefaultConfig returns radii 40..100 with 10 patches, no cache files,
// uncompressed matrices and info logging.
func DefaultConfig() Config {
	return Config{
		MinRadius:   40,
		MaxRadius:   100,
		PatchCount:  10,
		Compression: distmatrix.CompressionNone.String(),
		LogLevel:    "info",
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Unknown keys are rejected. An empty file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks every field. Errors wrap ErrConfig and, where one exists,
// the sentinel of the package that owns the rule.
func (c Config) Validate() error {
	if _, err := patch.Radii(c.MinRadius, c.MaxRadius, c.PatchCount); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrConfig, c.Workers)
	}
	if _, err := distmatrix.ParseCompression(c.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return nil
}

// compression returns the parsed codec; Validate has already vetted it.
func (c Config) compression() distmatrix.Compression {
	comp, _ := distmatrix.ParseCompression(c.Compression)
	return comp
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
