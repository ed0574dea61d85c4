package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/leadscan"
	"github.com/fwojciec/leadscan/goquery"
	leadhttp "github.com/fwojciec/leadscan/http"
	"github.com/fwojciec/leadscan/scan"
	leadslog "github.com/fwojciec/leadscan/slog"
	"github.com/fwojciec/leadscan/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the fetcher built from command flags.
	Fetcher leadscan.Fetcher

	// Services for end-to-end testing.
	ResultService leadscan.ResultService
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
		kong.Name("leadscan"),
		kong.Description("Find business emails and phone numbers on a web page."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leadscan --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEADSCAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ResultService = sqlite.NewResultService(m.DB)
	deps.DB = m.DB
	deps.Results = m.ResultService

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	switch cmd {
	case "scan":
		fetcher := m.newFetcher(cli.Scan.FetchFlags, logger)
		defer fetcher.Close()

		deps.Scanner = newScanner(fetcher, scan.NewGate(scan.DefaultInterval), cli.Scan.FetchFlags, logger)

	case "serve":
		fetcher := m.newFetcher(cli.Serve.FetchFlags, logger)
		defer fetcher.Close()

		server := leadhttp.NewServer()
		server.Addr = cli.Serve.Addr
		server.Scanner = newScanner(fetcher, scan.NewGate(cli.Serve.Interval), cli.Serve.FetchFlags, logger)
		server.Results = m.ResultService
		server.Limiter = scan.NewClientLimiter(cli.Serve.ClientRPS, cli.Serve.ClientBurst)
		server.Logger = logger
		deps.Server = server
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the configured fetcher wrapped with logging.
func (m *Main) newFetcher(flags FetchFlags, logger *slog.Logger) leadscan.Fetcher {
	if m.Fetcher != nil {
		return leadslog.NewLoggingFetcher(m.Fetcher, logger)
	}

	opts := []leadhttp.Option{
		leadhttp.WithTimeout(flags.Timeout),
		leadhttp.WithMaxBodySize(flags.MaxBodySize),
	}
	if flags.Direct {
		return leadslog.NewLoggingFetcher(leadhttp.NewFetcher(opts...), logger)
	}
	return leadslog.NewLoggingFetcher(leadhttp.NewRelayFetcher(flags.Relay, opts...), logger)
}

func newScanner(fetcher leadscan.Fetcher, gate leadscan.Throttle, flags FetchFlags, logger *slog.Logger) leadscan.Scanner {
	s := &scan.Scanner{
		Gate:    gate,
		Fetcher: fetcher,
	}
	if flags.StripScripts {
		s.Preprocessor = goquery.NewScriptStripper()
	}
	return leadslog.NewLoggingScanner(s, logger)
}

func defaultDBPath() string {
	if path := os.Getenv("LEADSCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "leadscan.db"
	}
	dir := filepath.Join(home, ".leadscan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "leadscan.db")
}
