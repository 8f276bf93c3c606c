// Command populate fills the movie and book tables from TMDB and Google Books.
//
//	populate --source=movies --pages=5
//	populate --source=books --query="subject:fantasy" --pages=3
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kingpin/v2"

	"github.com/oggyb/reelread/internal/catalog"
	"github.com/oggyb/reelread/internal/config"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/logger"
	"github.com/oggyb/reelread/internal/repository"
)

var (
	source = kingpin.Flag("source", "Catalog to import.").Default("movies").Enum("movies", "books")
	query  = kingpin.Flag("query", "Google Books search query (books only).").Default("subject:fiction").String()
	pages  = kingpin.Flag("pages", "Number of result pages to import.").Default("5").Int()
)

func main() {
	kingpin.Parse()

	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.With("component", "populate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	var tmdb *catalog.TMDBClient
	if cfg.Catalog.TMDBKey != "" {
		tmdb = catalog.NewTMDBClient(cfg.Catalog.TMDBURL, cfg.Catalog.TMDBKey)
	}
	books := catalog.NewBooksClient(cfg.Catalog.BooksURL, cfg.Catalog.BooksKey)
	importer := catalog.NewImporter(repository.NewMediaRepository(database), tmdb, books, log)

	var n int
	switch *source {
	case "movies":
		n, err = importer.ImportMovies(ctx, *pages)
	case "books":
		n, err = importer.ImportBooks(ctx, *query, *pages)
	}
	if err != nil {
		log.Error("import failed", "source", *source, "written", n, "err", err)
		os.Exit(1)
	}
	log.Info("import completed", "source", *source, "written", n)
}
