package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Importer Importer `yaml:"importer"`
}

type Server struct {
	ListenAddr      string `yaml:"listenAddr"`
	PostgresDsn     string `yaml:"postgresDsn"`
	RedisAddr       string `yaml:"redisAddr"`
	RedisPassword   string `yaml:"redisPassword"`
	RedisDB         int    `yaml:"redisDB"`
	ManifestURLBase string `yaml:"manifestUrlBase"`
	EnableTrace     bool   `yaml:"enableTrace"`
	TraceEndpoint   string `yaml:"traceEndpoint"`
}

type Importer struct {
	VoyagesURL      string `yaml:"voyagesUrl"`
	VoyagesKey      string `yaml:"voyagesKey"`
	ZoteroURL       string `yaml:"zoteroUrl"`
	ZoteroKey       string `yaml:"zoteroKey"`
	ZoteroGroupName string `yaml:"zoteroGroupName"`
	ZoteroUserID    string `yaml:"zoteroUserId"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.ListenAddr == "" {
		config.Server.ListenAddr = ":8000"
	}
	if config.Importer.ZoteroURL == "" {
		config.Importer.ZoteroURL = "https://api.zotero.org"
	}
	if config.Importer.ZoteroGroupName == "" {
		config.Importer.ZoteroGroupName = "sv-docs"
	}

	return config, nil
}
