/*
DESCRIPTION
  config.go provides the configuration settings for the ipedec decoder and
  its CLI front-end.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config holds the configuration settings shared by the camera
// decoder's CLI front-end: frame geometry, strictness, and output options.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config provides the parameters needed to decode a stream of raw camera
// frames. A zero-value Config decodes with the canonical frame geometry and
// lenient validation.
type Config struct {
	// NumRows is the number of rows expected per frame. Zero lets the
	// decoder fall back to the header-reported row count where available.
	NumRows int `yaml:"num_rows"`

	// NumColumns is the number of pixels per row. Must be a multiple of
	// 128; zero defaults to the canonical width (2048).
	NumColumns int `yaml:"num_columns"`

	// Strict promotes soft validation failures (footer sentinel and
	// tag-bit mismatches) to hard errors.
	Strict bool `yaml:"strict"`

	// FastUnpack selects the batch-oriented v0/v4 sample unpacker.
	FastUnpack bool `yaml:"fast_unpack"`

	// ConvertBayer additionally writes a debayered PNG preview alongside
	// the raw output for each decoded frame.
	ConvertBayer bool `yaml:"convert_bayer"`

	// ClearFrame zeroes the pixel buffer before each frame decode, rather
	// than reusing whatever the previous frame left behind.
	ClearFrame bool `yaml:"clear_frame"`

	// Continue keeps decoding subsequent frames in a stream after one
	// frame fails, rather than stopping at the first error.
	Continue bool `yaml:"continue"`
}

// DefaultWidth is the canonical frame width used when NumColumns is left
// at zero.
const DefaultWidth = 2048

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrapf(err, "could not read config file %s", path)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, errors.Wrapf(err, "could not parse config file %s", path)
	}
	return c, nil
}

// Width returns c.NumColumns, or DefaultWidth if it is unset.
func (c Config) Width() int {
	if c.NumColumns == 0 {
		return DefaultWidth
	}
	return c.NumColumns
}
