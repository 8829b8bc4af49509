// cmd/tools/movie-loader/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"movie-graph-workers/internal/catalog"
	"movie-graph-workers/internal/common/config"
	"movie-graph-workers/internal/common/database"
	"movie-graph-workers/internal/common/logger"
)

func main() {
	csvPath := flag.String("csv", "data/imdb_top_1000.csv", "Path to the IMDB top-1000 catalogue CSV")
	configPath := flag.String("config", "", "Path to a config file (default: configs/config.yaml)")
	dryRun := flag.Bool("dry-run", false, "Parse the catalogue without writing to Neo4j")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, "console", "stderr")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	f, err := os.Open(*csvPath)
	if err != nil {
		zapLog.Fatal("open catalogue", zap.Error(err))
	}
	movies, err := catalog.ReadMovies(f)
	f.Close()
	if err != nil {
		zapLog.Fatal("read catalogue", zap.String("path", *csvPath), zap.Error(err))
	}
	zapLog.Info("catalogue parsed", zap.String("path", *csvPath), zap.Int("movies", len(movies)))

	if *dryRun {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graph, err := database.NewNeo4j(cfg.Graph)
	if err != nil {
		zapLog.Fatal("neo4j driver creation failed", zap.Error(err))
	}
	defer graph.Close(context.Background())

	if err := graph.Ping(ctx); err != nil {
		zapLog.Fatal("neo4j unreachable", zap.String("uri", cfg.Graph.URI), zap.Error(err))
	}

	loaded, err := catalog.NewLoader(graph, log).Load(ctx, movies)
	if err != nil {
		zapLog.Fatal("Error loading data into Neo4j", zap.Int("loaded", loaded), zap.Error(err))
	}
	fmt.Println("Data loaded successfully")
}
