package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/server"
)

var CLI struct {
	Config   string `short:"c" default:"blackjack-server.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Listen address to bind to (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	if CLI.Addr != "" {
		host, port, err := net.SplitHostPort(CLI.Addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --addr %q: %v\n", CLI.Addr, err)
			ctx.Exit(1)
		}
		cfg.Server.Address = host
		cfg.Server.Port, _ = strconv.Atoi(port)
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		ctx.Exit(1)
	}

	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	srv := server.NewServer(cfg, logger)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}
