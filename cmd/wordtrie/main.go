// Copyright 2025 The WordTrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordtrie dictionary as an IPC server, a web service or
an interactive shell.

WordTrie stores a word list in a character trie, one node per letter, with
the frequency of each word on its final node. On top of that it answers
membership checks, the ten most frequent completions of a prefix, the words
ending in a suffix, and spelling suggestions one substituted letter away.

# Usage

Start the msgpack IPC server on the default listing:

	wordtrie

Serve the web API on a custom address with debug logs:

	wordtrie -http 127.0.0.1:9000 -d

Open the interactive shell on another listing:

	wordtrie -c -dict animals.txt -limit 5

# Dictionaries

The data directory holds plain text listings, one "word frequency" pair per
line:

	that 1135262
	with 968354
	understand 64233.5

Every *.txt file in the directory is a selectable dictionary. The directory
is looked up next to the executable, in the working directory and in the
config directory, in that order.

# Configuration

Settings live in a TOML file, created with defaults on first run:

	[server]
	max_limit = 64
	default_limit = 10
	min_prefix = 1
	max_prefix = 60
	cache_size = 2048

	[dict]
	data_dir = "data"
	default = "frequency.txt"

	[web]
	addr = "127.0.0.1:8080"
	cookie_name = "wordtrie_session"

	[cli]
	default_limit = 10
	default_no_filter = false

Flags given on the command line override the file.

# Modes

The IPC server reads msgpack requests from stdin and answers on stdout, see
package server for the message format. The web mode serves the JSON API of
package web, with each visitor's removals kept in a session. The shell (-c)
accepts the same operations as typed commands.

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug logging
	-c  Run the interactive shell
	-http string
	    Serve the web API on this address ("default" uses the config value)
	-data string
	    Directory containing the dictionary listings
	-dict string
	    Listing to load
	-config string
	    Path to a custom config file
	-limit int
	    Number of completions the shell shows
	-no-filter
	    Disable input filtering in the shell
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/web"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.4.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"

	sessionTTL    = 12 * time.Hour
	sweepInterval = 10 * time.Minute
)

// sigHandler exits on SIGINT and SIGTERM. The web mode shuts down through
// its own context instead.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive shell")
	httpAddr := flag.String("http", "", "Serve the web API on this address (\"default\" uses the config value)")
	dataDir := flag.String("data", "", "Directory containing the dictionary listings")
	dictName := flag.String("dict", "", "Dictionary listing to load")
	configFile := flag.String("config", "", "Path to custom config file")
	limit := flag.Int("limit", 0, "Number of completions the shell shows")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering in the shell (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))
	applyFlags(appConfig, *dataDir, *dictName, *httpAddr, *limit, *noFilter)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	resolvedDataDir, err := pathResolver.GetDataDir(appConfig.Dict.DataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	loader := dictionary.NewLoader(resolvedDataDir)
	if !loader.Has(appConfig.Dict.Default) {
		log.Fatalf("Dictionary %s not found in %s", appConfig.Dict.Default, resolvedDataDir)
	}
	if err := dictionary.Validate(filepath.Join(resolvedDataDir, appConfig.Dict.Default)); err != nil {
		log.Fatalf("Invalid dictionary: %v", err)
	}

	if *httpAddr != "" {
		runWeb(loader, appConfig)
		return
	}

	sigHandler()

	t, err := loader.Build(appConfig.Dict.Default)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	completer := suggest.NewCompleter(t, appConfig.Server.CacheSize, appConfig.Server.MaxLimit)
	log.Debugf("Loaded %d words from %s", completer.Count(), appConfig.Dict.Default)

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", appConfig.Server.MinPrefix,
			"maxPrefix", appConfig.Server.MaxPrefix,
			"limit", appConfig.CLI.DefaultLimit,
			"noFilter", appConfig.CLI.DefaultNoFilter)

		inputHandler := cli.NewInputHandler(completer,
			appConfig.Server.MinPrefix,
			appConfig.Server.MaxPrefix,
			appConfig.CLI.DefaultLimit,
			appConfig.CLI.DefaultNoFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(resolvedDataDir, appConfig.Dict.Default, completer.Count())

	srv := server.NewServer(completer, appConfig, os.Stdin, os.Stdout)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// applyFlags lays the command line over the loaded config.
func applyFlags(cfg *config.Config, dataDir, dictName, httpAddr string, limit int, noFilter bool) {
	if dataDir != "" {
		cfg.Dict.DataDir = dataDir
	}
	if dictName != "" {
		cfg.Dict.Default = dictName
	}
	if httpAddr != "" && httpAddr != "default" {
		cfg.Web.Addr = httpAddr
	}
	if limit > 0 {
		cfg.CLI.DefaultLimit = min(limit, cfg.Server.MaxLimit)
	}
	if noFilter {
		cfg.CLI.DefaultNoFilter = true
	}
}

func runWeb(loader *dictionary.Loader, cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewStore(sessionTTL)
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(); n > 0 {
					log.Debugf("Swept %d idle sessions", n)
				}
			}
		}
	}()

	srv := web.NewServer(loader, sessions, cfg, logger.New("web"))
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("Web server error: %v", err)
	}
	fmt.Fprintf(os.Stderr, "\nExiting...\n")
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordTrie ] frequency ranked dictionary lookups")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir, dict string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("dictionary: %s (%d words)", dict, words)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
