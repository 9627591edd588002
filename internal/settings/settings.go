// settings.go: Tool settings loaded from YAML with environment overrides.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package settings holds the defaults shared by the urlmatrix subcommands.
//
// Precedence, lowest first: built-in defaults, the YAML file, environment
// variables, command line flags (applied by the caller).
package settings

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	goerrors "github.com/agilira/go-errors"
	"gopkg.in/yaml.v2"

	"github.com/agilira/urlmatrix"
	"github.com/agilira/urlmatrix/internal/logging"
)

// Environment overrides.
const (
	EnvDimension = "URLMATRIX_DIMENSION"
	EnvFragments = "URLMATRIX_FRAGMENTS"
	EnvNoDecoys  = "URLMATRIX_NO_DECOYS"
)

// Output formats accepted by the encode command.
const (
	FormatJava = "java"
	FormatJSON = "json"
)

// Public standard errors, usable with errors.Is().
var (
	ErrInvalidSettings = errors.New("settings: invalid settings")
)

// Error codes for rich error handling
const (
	ErrCodeRead    = "SETTINGS_READ"
	ErrCodeParse   = "SETTINGS_PARSE"
	ErrCodeInvalid = "SETTINGS_INVALID"
)

// Settings are the persisted defaults of the encode command.
type Settings struct {
	Dimension int    `yaml:"dimension"`
	Fragments int    `yaml:"fragments"`
	NoDecoys  bool   `yaml:"noDecoys"`
	Output    string `yaml:"output"`
	Format    string `yaml:"format"`
	LogLevel  string `yaml:"logLevel"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Dimension: urlmatrix.DefaultDimension,
		Fragments: urlmatrix.DefaultFragmentCount,
		Format:    FormatJava,
		LogLevel:  logging.DefaultLevel,
	}
}

// Load reads path (when non-empty), fills zero fields with defaults and then
// applies the environment overrides. The result is not validated, since flags
// may still change it; call Validate once they are applied.
func Load(path string) (Settings, error) {
	s := Settings{}
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
		if err != nil {
			return Settings{}, goerrors.Wrap(err, ErrCodeRead, "failed to read settings file")
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, goerrors.Wrap(err, ErrCodeParse, "failed to parse settings file")
		}
	}

	def := Default()
	if s.Dimension == 0 {
		s.Dimension = def.Dimension
	}
	if s.Fragments == 0 {
		s.Fragments = def.Fragments
	}
	if s.Format == "" {
		s.Format = def.Format
	}
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}

	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv(EnvDimension); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid(fmt.Sprintf("%s must be an integer (got %q)", EnvDimension, v))
		}
		s.Dimension = n
	}
	if v := os.Getenv(EnvFragments); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid(fmt.Sprintf("%s must be an integer (got %q)", EnvFragments, v))
		}
		s.Fragments = n
	}
	if v := os.Getenv(EnvNoDecoys); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalid(fmt.Sprintf("%s must be a boolean (got %q)", EnvNoDecoys, v))
		}
		s.NoDecoys = b
	}
	if v := os.Getenv(logging.EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	return nil
}

// Validate checks the output format and the matrix shape.
func (s Settings) Validate() error {
	switch strings.ToLower(s.Format) {
	case FormatJava, FormatJSON:
	default:
		return invalid(fmt.Sprintf("format must be %q or %q (got %q)", FormatJava, FormatJSON, s.Format))
	}
	return s.MatrixConfig().Validate()
}

// MatrixConfig converts the settings into a urlmatrix configuration.
func (s Settings) MatrixConfig() urlmatrix.MatrixConfig {
	return urlmatrix.MatrixConfig{
		Dimension:     s.Dimension,
		FragmentCount: s.Fragments,
		Decoys:        !s.NoDecoys,
	}
}

func invalid(msg string) error {
	richErr := goerrors.New(ErrCodeInvalid, msg)
	return fmt.Errorf("%w: %w", ErrInvalidSettings, richErr)
}
