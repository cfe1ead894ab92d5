package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/mapsync/notion"
	"gopkg.in/yaml.v3"
)

// Table backends.
const (
	BackendNotion = "notion"
	BackendSQLite = "sqlite"
)

// FileConfig is the optional YAML configuration file.
//
//	notion:
//	  token: secret_xxx
//	  database_id: 8e2c1f4a...
//	  properties:
//	    name: Nom
//	    status: Statut
type FileConfig struct {
	Notion NotionConfig `yaml:"notion"`
}

// NotionConfig holds the Notion section of the configuration file.
type NotionConfig struct {
	Token      string           `yaml:"token"`
	DatabaseID string           `yaml:"database_id"`
	Properties NotionProperties `yaml:"properties"`
}

// NotionProperties overrides database property names. Empty entries keep
// the defaults.
type NotionProperties struct {
	Name          string `yaml:"name"`
	Address       string `yaml:"address"`
	Phone         string `yaml:"phone"`
	Website       string `yaml:"website"`
	Category      string `yaml:"category"`
	City          string `yaml:"city"`
	Status        string `yaml:"status"`
	DefaultStatus string `yaml:"default_status"`
	DateAdded     string `yaml:"date_added"`
	Comments      string `yaml:"comments"`
}

// LoadConfig reads the configuration file at path. A missing file yields an
// empty configuration.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Settings is the resolved runtime configuration.
type Settings struct {
	Backend    string
	DBPath     string
	Token      string
	DatabaseID string
	Schema     notion.Schema
}

// ResolveSettings merges flags and environment (already applied to cli) over
// the configuration file, falling back to defaults.
func ResolveSettings(cli *CLI, file *FileConfig, defaultDBPath string) Settings {
	if file == nil {
		file = &FileConfig{}
	}
	return Settings{
		Backend:    firstNonEmpty(cli.Backend, BackendNotion),
		DBPath:     firstNonEmpty(cli.DB, defaultDBPath),
		Token:      firstNonEmpty(cli.Token, file.Notion.Token),
		DatabaseID: firstNonEmpty(cli.DatabaseID, file.Notion.DatabaseID),
		Schema:     file.Notion.Properties.schema(),
	}
}

func (p NotionProperties) schema() notion.Schema {
	s := notion.DefaultSchema()
	s.Name = firstNonEmpty(p.Name, s.Name)
	s.Address = firstNonEmpty(p.Address, s.Address)
	s.Phone = firstNonEmpty(p.Phone, s.Phone)
	s.Website = firstNonEmpty(p.Website, s.Website)
	s.Category = firstNonEmpty(p.Category, s.Category)
	s.City = firstNonEmpty(p.City, s.City)
	s.Status = firstNonEmpty(p.Status, s.Status)
	s.DefaultStatus = firstNonEmpty(p.DefaultStatus, s.DefaultStatus)
	s.DateAdded = firstNonEmpty(p.DateAdded, s.DateAdded)
	s.Comments = firstNonEmpty(p.Comments, s.Comments)
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
