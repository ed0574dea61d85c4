package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/leadscan"
	leadhttp "github.com/fwojciec/leadscan/http"
	"github.com/fwojciec/leadscan/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Results leadscan.ResultService
	Scanner leadscan.Scanner
	Server  *leadhttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and scans to stderr"`

	Scan    ScanCmd    `cmd:"" help:"Extract emails and phone numbers from a web page"`
	History HistoryCmd `cmd:"" help:"List saved scan results"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved scan result"`
	Serve   ServeCmd   `cmd:"" help:"Serve scans over HTTP"`
}

// FetchFlags configure how pages are retrieved.
type FetchFlags struct {
	Direct       bool          `help:"Fetch pages directly instead of through the relay"`
	Relay        string        `env:"LEADSCAN_RELAY" default:"https://corsproxy.io/?" help:"Relay base URL; the encoded target URL is appended"`
	Timeout      time.Duration `default:"10s" help:"Fetch timeout"`
	MaxBodySize  int64         `default:"5242880" help:"Maximum response size in bytes"`
	StripScripts bool          `help:"Ignore script, style, noscript and template contents"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	URL    string `arg:"" help:"Page URL or bare domain"`
	Save   bool   `short:"s" help:"Save the result to history"`
	User   string `env:"LEADSCAN_USER" default:"local" help:"User ID that owns saved results"`
	Format string `short:"o" enum:"text,json,csv" default:"text" help:"Output format (text, json, csv)"`
	Export string `type:"path" help:"Also write a CSV export to this directory"`

	FetchFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	User   string `env:"LEADSCAN_USER" default:"local" help:"User ID whose history to list"`
	Limit  int    `short:"n" default:"5" help:"Maximum number of results"`
	Format string `short:"o" enum:"text,json,csv" default:"text" help:"Output format (text, json, csv)"`
	Export string `type:"path" help:"Also write a CSV export to this directory"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Result ID"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string        `env:"LEADSCAN_ADDR" default:":8080" help:"Listen address"`
	Interval    time.Duration `default:"5s" help:"Minimum time between scans across all clients"`
	ClientRPS   float64       `name:"client-rps" default:"0.2" help:"Scans per second allowed per client"`
	ClientBurst int           `name:"client-burst" default:"1" help:"Burst size per client"`

	FetchFlags `embed:""`
}
