// Package config parses glossa.yaml, the host's run configuration. It
// plays the same role as the teacher's pkg/driver.Manifest — a typed
// struct decoded from YAML with field-name validation and an aggregated
// ValidationError — repointed at a much smaller document: ΓΛΩΣΣΑ has no
// package/dependency graph (§3: one flat program plus subprograms), so
// this config only pins the handful of host-observable behaviors
// SPEC_FULL.md's Open Questions leave implementation-defined.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RealFormat selects how ΓΡΑΨΕ renders REAL values.
type RealFormat string

const (
	// RealFormatShortest is the default: the shortest round-trip decimal,
	// always showing at least one fractional digit (§6).
	RealFormatShortest RealFormat = "shortest"
	// RealFormatFixed renders every REAL with a fixed number of
	// fractional digits (see FixedDecimals).
	RealFormatFixed RealFormat = "fixed"
)

// Config is the decoded, validated contents of glossa.yaml.
type Config struct {
	Path string

	// DefaultSource is the ΓΛΩΣΣΑ source file `glossa run` loads when no
	// file argument is given, resolved relative to the directory
	// glossa.yaml lives in.
	DefaultSource string

	// RealFormat selects the ΓΡΑΨΕ real-number rendering policy (one of
	// SPEC_FULL.md's Open Question resolutions).
	RealFormat RealFormat
	// FixedDecimals is the fractional digit count used when RealFormat
	// is "fixed". Ignored otherwise.
	FixedDecimals int

	// StrictStepZero documents SPEC_FULL.md's resolution that a ΓΙΑ loop
	// with step 0 is always a diagnostic, never a silent skip or an
	// infinite loop (see DESIGN.md). There is currently no supported
	// alternative, so this field exists to make the policy visible in
	// the parsed config rather than to select between behaviors.
	StrictStepZero bool

	// ArrayReadOnePerLine documents the other Open Question resolution:
	// ΔΙΑΒΑΣΕ always consumes exactly one input line per target, array
	// element or scalar alike, never multiple values packed on one
	// line. Present for the same documentation reason as StrictStepZero.
	ArrayReadOnePerLine bool
}

type rawConfig struct {
	DefaultSource  string `yaml:"default_source"`
	RealFormat     string `yaml:"real_format"`
	FixedDecimals  *int   `yaml:"fixed_decimals"`
	StrictStepZero *bool  `yaml:"strict_step_zero"`
	ArrayReadOne   *bool  `yaml:"array_read_one_per_line"`
}

// ValidationError aggregates every problem found in a glossa.yaml
// document, patterned on the teacher's manifest ValidationError so a
// host can report every issue at once instead of stopping at the first.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "glossa.yaml: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("glossa.yaml: invalid configuration:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the configuration used when no glossa.yaml is found.
func Default() *Config {
	return &Config{
		RealFormat:          RealFormatShortest,
		StrictStepZero:      true,
		ArrayReadOnePerLine: true,
	}
}

// Load parses and validates glossa.yaml at path.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("glossa.yaml: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("glossa.yaml: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw rawConfig
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("glossa.yaml: %s is empty", absPath)
		}
		return nil, fmt.Errorf("glossa.yaml: parse %s: %w", absPath, err)
	}

	cfg := Default()
	cfg.Path = absPath
	cfg.DefaultSource = raw.DefaultSource
	if raw.RealFormat != "" {
		cfg.RealFormat = RealFormat(raw.RealFormat)
	}
	if raw.FixedDecimals != nil {
		cfg.FixedDecimals = *raw.FixedDecimals
	}
	if raw.StrictStepZero != nil {
		cfg.StrictStepZero = *raw.StrictStepZero
	}
	if raw.ArrayReadOne != nil {
		cfg.ArrayReadOnePerLine = *raw.ArrayReadOne
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find walks up from start looking for glossa.yaml, the way the
// teacher's driver.findManifest walks up looking for package.yml.
var ErrNotFound = errors.New("glossa.yaml not found")

func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("glossa.yaml: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, "glossa.yaml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

func (c *Config) validate() error {
	var errs ValidationError
	switch c.RealFormat {
	case RealFormatShortest, RealFormatFixed:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("real_format %q is not one of shortest, fixed", c.RealFormat))
	}
	if c.RealFormat == RealFormatFixed && c.FixedDecimals < 0 {
		errs.Issues = append(errs.Issues, "fixed_decimals must not be negative")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ResolveSource joins DefaultSource against the directory glossa.yaml
// was loaded from, so relative paths in the config behave the same
// regardless of the host's current working directory.
func (c *Config) ResolveSource() string {
	if c.DefaultSource == "" {
		return ""
	}
	if filepath.IsAbs(c.DefaultSource) {
		return c.DefaultSource
	}
	if c.Path == "" {
		return c.DefaultSource
	}
	return filepath.Join(filepath.Dir(c.Path), c.DefaultSource)
}
