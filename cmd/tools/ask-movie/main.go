// cmd/tools/ask-movie/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"movie-graph-workers/internal/catalog"
	"movie-graph-workers/internal/common/config"
	"movie-graph-workers/internal/common/database"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/qa"
)

func main() {
	question := flag.String("q", "", "Question to ask, e.g. \"What is the genre of Titanic?\"")
	fixtures := flag.String("fixtures", "", "Answer from a catalogue CSV instead of Neo4j")
	configPath := flag.String("config", "", "Path to a config file (default: configs/config.yaml)")
	asJSON := flag.Bool("json", false, "Print the full answer as JSON")
	verbose := flag.Bool("v", false, "Log to stderr")
	flag.Parse()

	if *question == "" {
		*question = strings.Join(flag.Args(), " ")
	}
	if strings.TrimSpace(*question) == "" {
		fmt.Fprintln(os.Stderr, "Error: a question is required (-q or arguments)")
		flag.Usage()
		os.Exit(2)
	}

	log := logger.NewNoOpLogger()
	if *verbose {
		log = logger.NewZapAdapter(logger.NewWithOutput("debug", "console", "stderr"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	table := intent.DefaultTable()
	store, closeStore, err := openStore(ctx, table, *fixtures, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	answer := qa.NewService(table, store, log).Ask(ctx, *question)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(answer); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(answer.Text)
}

func openStore(ctx context.Context, table *intent.Table, fixtures, configPath string) (qa.Store, func(), error) {
	if fixtures != "" {
		f, err := os.Open(fixtures)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		movies, err := catalog.ReadMovies(f)
		if err != nil {
			return nil, nil, err
		}
		store := qa.NewMemoryStore()
		store.LoadMovies(table, movies)
		return store, func() {}, nil
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	// Connection failures are not fatal: the answer reports them.
	graph, err := database.NewNeo4j(cfg.Graph)
	if err != nil {
		return nil, nil, err
	}
	return graph, func() { _ = graph.Close(ctx) }, nil
}
