// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config holds the local filesystem backend settings.
type Config struct {
	// Dir is the storage root. Record trees, annotation markers and
	// the bulk file store all live under it.
	Dir string `json:"dir,omitempty" mapstructure:"dir"`
}

// FromMap decodes backend settings from a generic option map, e.g. one
// parsed out of a configuration file.
func FromMap(opts map[string]any) (Config, error) {
	var cfg Config
	if err := mapstructure.Decode(opts, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode localfs config: %w", err)
	}

	return cfg, nil
}
