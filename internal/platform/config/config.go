package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	DataPath     string
	StatePath    string
	SessionsPath string
	DBPath       string
}

func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	return Config{
		DataPath:     dataPath,
		StatePath:    filepath.Join(dataPath, "active-session.json"),
		SessionsPath: filepath.Join(dataPath, "sessions"),
		DBPath:       filepath.Join(dataPath, "index.db"),
	}, nil
}
