package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/mapsync"
	"github.com/fwojciec/mapsync/goquery"
	maphttp "github.com/fwojciec/mapsync/http"
	"github.com/fwojciec/mapsync/notion"
	"github.com/fwojciec/mapsync/pipeline"
)

// DatabaseRetriever reads the metadata of the remote database.
type DatabaseRetriever interface {
	RetrieveDatabase(ctx context.Context) (*notion.Database, error)
}

// RowCounter counts the rows of a local table.
type RowCounter interface {
	CountRows(ctx context.Context) (int, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Settings    Settings
	Pipeline    *pipeline.Pipeline
	Detector    *goquery.Detector
	Importer    mapsync.ImportService
	TableStatus maphttp.TableStatus
	Database    DatabaseRetriever
	Rows        RowCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config     string `default:"config.yaml" help:"YAML configuration file (optional)"`
	Backend    string `enum:"notion,sqlite" default:"notion" env:"MAPSYNC_BACKEND" help:"Table backend (notion or sqlite)"`
	DB         string `name:"db" env:"MAPSYNC_DB" help:"SQLite database path for the sqlite backend"`
	Token      string `env:"NOTION_TOKEN" help:"Notion integration token"`
	DatabaseID string `name:"database-id" env:"NOTION_DATABASE_ID" help:"Notion database id"`
	Debug      bool   `help:"Enable debug logging"`

	Import  ImportCmd  `cmd:"" help:"Extract listings from saved pages and sync them to the table"`
	Preview PreviewCmd `cmd:"" help:"Show the listings of a saved page without syncing"`
	Serve   ServeCmd   `cmd:"" help:"Run the upload web server"`
	Status  StatusCmd  `cmd:"" help:"Check the table configuration"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Files    []string `arg:"" help:"Saved Google Maps pages (.html)"`
	City     string   `help:"City applied to every listing"`
	Category string   `help:"Business type applied to every listing"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	File     string `arg:"" help:"Saved Google Maps page (.html)"`
	City     string `help:"City applied to every listing"`
	Category string `help:"Business type applied to every listing"`
	JSON     bool   `name:"json" help:"Print listings as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string `default:":8080" env:"MAPSYNC_ADDR" help:"Listen address"`
	MaxUploadMiB  int64  `name:"max-upload-mib" default:"16" help:"Maximum upload size in MiB"`
	ShutdownGrace int    `default:"10" help:"Seconds to wait for in-flight requests on shutdown"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

func (c *ImportCmd) options() mapsync.NormalizeOptions {
	return mapsync.NormalizeOptions{CityHint: c.City, CategoryOverride: c.Category}
}

func (c *PreviewCmd) options() mapsync.NormalizeOptions {
	return mapsync.NormalizeOptions{CityHint: c.City, CategoryOverride: c.Category}
}
