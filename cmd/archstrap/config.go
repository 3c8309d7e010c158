package main

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/osbuild/archstrap/internal/install"
)

type archstrapConfig struct {
	// address the API server binds to
	ListenAddress string `toml:"listen_address"`
	// timezone database blueprints are validated against
	ZoneinfoDir string `toml:"zoneinfo_dir"`
	LogLevel    string `toml:"log_level"`
}

func parseConfig(file string) (*archstrapConfig, error) {
	// set defaults
	config := archstrapConfig{
		ListenAddress: "localhost:8700",
		ZoneinfoDir:   install.DefaultZoneinfoDir,
		LogLevel:      "info",
	}

	_, err := toml.DecodeFile(file, &config)
	if err != nil {
		// Return error only when we failed to decode the file.
		// A non-existing config isn't an error, use defaults in this case.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &config, nil
}
