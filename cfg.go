package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/spinlines/config"
)

const configEnv = "SPINLINES_CONFIG"

// Load reads the client configuration and sets up logging from it.
func Load() (config.Config, error) {
	cfg, err := config.Load(os.Getenv(configEnv))
	if err != nil {
		return cfg, err
	}
	log.SetLevel(cfg.Level())
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return cfg, nil
}
