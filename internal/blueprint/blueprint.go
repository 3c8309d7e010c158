// Package blueprint contains primitives for representing the user's
// description of an Arch Linux installation.
//
// A blueprint is raw input. Every field is optional at this layer and
// decoding never fails because a key is missing; deciding which omissions
// are fatal, which get defaults, and which only deserve a warning is the
// job of the install package.
package blueprint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// A Blueprint describes one machine to install. The zero value is a valid
// (if useless) blueprint.
type Blueprint struct {
	Hostname   *string     `json:"hostname,omitempty" toml:"hostname,omitempty" yaml:"hostname,omitempty"`
	Region     *string     `json:"region,omitempty" toml:"region,omitempty" yaml:"region,omitempty"`
	City       *string     `json:"city,omitempty" toml:"city,omitempty" yaml:"city,omitempty"`
	Locales    []string    `json:"locales,omitempty" toml:"locales,omitempty" yaml:"locales,omitempty"`
	Kernel     *string     `json:"kernel,omitempty" toml:"kernel,omitempty" yaml:"kernel,omitempty"`
	Extra      *string     `json:"extra,omitempty" toml:"extra,omitempty" yaml:"extra,omitempty"`
	Bootloader *string     `json:"bootloader,omitempty" toml:"bootloader,omitempty" yaml:"bootloader,omitempty"`
	Partitions []Partition `json:"partitions,omitempty" toml:"partitions,omitempty" yaml:"partitions,omitempty"`
	Users      []User      `json:"users,omitempty" toml:"users,omitempty" yaml:"users,omitempty"`
}

// A Partition describes one partition to create. The disk it lives on is
// named per partition; partitions listed on the same disk are numbered in
// the order they appear.
type Partition struct {
	Format *string `json:"format,omitempty" toml:"format,omitempty" yaml:"format,omitempty"`
	Disk   *string `json:"disk,omitempty" toml:"disk,omitempty" yaml:"disk,omitempty"`
	Size   *string `json:"size,omitempty" toml:"size,omitempty" yaml:"size,omitempty"`
	Mount  *string `json:"mount,omitempty" toml:"mount,omitempty" yaml:"mount,omitempty"`
}

// A User describes an account to create in addition to root.
type User struct {
	Name   *string  `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Groups []string `json:"groups,omitempty" toml:"groups,omitempty" yaml:"groups,omitempty"`
	Shell  *string  `json:"shell,omitempty" toml:"shell,omitempty" yaml:"shell,omitempty"`
}

// Format identifies the serialization a blueprint document is written in.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Decode parses a blueprint document. Keys the Blueprint struct doesn't
// know are ignored in all three formats.
func Decode(data []byte, format Format) (*Blueprint, error) {
	var bp Blueprint
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("decoding TOML blueprint: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("decoding JSON blueprint: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("decoding YAML blueprint: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown blueprint format %q", format)
	}
	return &bp, nil
}

// FormatForPath picks the blueprint format from a file name. TOML is the
// default when the extension is unrecognized.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// DecodeFile reads and decodes the blueprint at path.
func DecodeFile(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bp, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bp, nil
}
