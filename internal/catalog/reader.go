// Package catalog reads the IMDB top-1000 movie catalogue and loads it into the graph.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"movie-graph-workers/internal/models"
)

// Column names of the catalogue CSV header.
const (
	ColTitle        = "Series_Title"
	ColReleasedYear = "Released_Year"
	ColCertificate  = "Certificate"
	ColRuntime      = "Runtime"
	ColGenre        = "Genre"
	ColRating       = "IMDB_Rating"
	ColOverview     = "Overview"
	ColMetaScore    = "Meta_score"
	ColDirector     = "Director"
	ColVotes        = "No_of_Votes"
	ColGross        = "Gross"
)

var starColumns = []string{"Star1", "Star2", "Star3", "Star4"}

var ErrMissingColumn = errors.New("missing catalogue column")

// ReadMovies parses every row of a catalogue CSV. Columns are located by header
// name; only Series_Title is required. Rows without a title are skipped.
func ReadMovies(r io.Reader) ([]models.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, ColTitle)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	if _, ok := index[ColTitle]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColTitle)
	}

	var movies []models.Movie
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		movie := models.Movie{
			Title:        field(ColTitle),
			ReleasedYear: field(ColReleasedYear),
			Certificate:  field(ColCertificate),
			Runtime:      field(ColRuntime),
			Genre:        field(ColGenre),
			Rating:       field(ColRating),
			Overview:     field(ColOverview),
			MetaScore:    field(ColMetaScore),
			Votes:        field(ColVotes),
			Gross:        field(ColGross),
			Director:     field(ColDirector),
		}
		if movie.Title == "" {
			continue
		}
		for _, col := range starColumns {
			if star := field(col); star != "" {
				movie.Actors = append(movie.Actors, star)
			}
		}
		movies = append(movies, movie)
	}

	return movies, nil
}
