package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mapsync"
	"github.com/fwojciec/mapsync/goquery"
	maphttp "github.com/fwojciec/mapsync/http"
	"github.com/fwojciec/mapsync/notion"
	"github.com/fwojciec/mapsync/pipeline"
	mapslog "github.com/fwojciec/mapsync/slog"
	"github.com/fwojciec/mapsync/sqlite"
	"github.com/fwojciec/mapsync/tablesync"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	gin.SetMode(gin.ReleaseMode)

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default SQLite database path, used when --db is not given.
	DBPath string

	// SQLite database opened for the sqlite backend.
	DB *sqlite.DB

	// TableService replaces the configured backend. Used for end-to-end testing.
	TableService mapsync.TableService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mapsync"),
		kong.Description("Import saved Google Maps result pages into a prospect table."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mapsync --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	logger := newLogger(stderr, cli.Debug)
	deps.Logger = logger

	file, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	settings := ResolveSettings(cli, file, m.DBPath)
	deps.Settings = settings

	extractor := mapslog.NewLoggingExtractor(goquery.NewExtractor(nil), logger)
	deps.Pipeline = &pipeline.Pipeline{Extractor: extractor, Logger: logger}
	deps.Detector = goquery.NewDetector(nil)

	if cmd == "preview" {
		return kongCtx.Run(deps)
	}

	table, err := m.openTable(deps, settings)
	if err != nil {
		if mapsync.ErrorCode(err) != mapsync.EINVALID {
			return err
		}
		fmt.Fprintf(stderr, "Hint: %s\n", configHint)
		// status reports a missing configuration instead of failing.
		if cmd != "status" {
			return err
		}
		return kongCtx.Run(deps)
	}
	defer m.Close()

	syncer, err := tablesync.NewSyncer(
		mapslog.NewLoggingTableService(table, logger),
		tablesync.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	deps.Importer = &tablesync.Importer{Pipeline: deps.Pipeline, Syncer: syncer}

	return kongCtx.Run(deps)
}

const configHint = "set NOTION_TOKEN and NOTION_DATABASE_ID, add them to config.yaml, or use --backend sqlite"

// openTable wires the table backend selected by settings into deps.
func (m *Main) openTable(deps *Dependencies, settings Settings) (mapsync.TableService, error) {
	deps.TableStatus = maphttp.TableStatus{Backend: settings.Backend}

	if m.TableService != nil {
		deps.TableStatus.Configured = true
		return m.TableService, nil
	}

	switch settings.Backend {
	case BackendSQLite:
		m.DB = sqlite.NewDB(settings.DBPath)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", settings.DBPath, err)
		}
		table := sqlite.NewProspectTable(m.DB, nil)
		deps.Rows = table
		deps.TableStatus.Configured = true
		return table, nil
	default:
		client, err := notion.NewClient(settings.Token, settings.DatabaseID, notion.WithSchema(settings.Schema))
		if err != nil {
			return nil, err
		}
		deps.Database = client
		deps.TableStatus.Configured = true
		deps.TableStatus.DatabaseID = client.DatabaseID()
		return client, nil
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mapsync.db"
	}
	dir := filepath.Join(home, ".mapsync")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "mapsync.db")
}
