package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMovies_SampleCatalogue(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "testdata", "imdb_top_sample.csv"))
	require.NoError(t, err)
	defer f.Close()

	movies, err := ReadMovies(f)
	require.NoError(t, err)
	require.Len(t, movies, 5)

	godfather := movies[1]
	assert.Equal(t, "The Godfather", godfather.Title)
	assert.Equal(t, "Crime, Drama", godfather.Genre)
	assert.Equal(t, "9.2", godfather.Rating)
	assert.Equal(t, "Francis Ford Coppola", godfather.Director)
	assert.Equal(t, []string{"Marlon Brando", "Al Pacino", "James Caan", "Diane Keaton"}, godfather.Actors)
	assert.Equal(t, "134,966,411", godfather.Gross)
	assert.Equal(t, "1972", godfather.ReleasedYear)

	titanic := movies[4]
	assert.Equal(t, "Titanic", titanic.Title)
	assert.Empty(t, titanic.Rating)
}

func TestReadMovies_Edges(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		expectErr error
		titles    []string
		actors    [][]string
	}{
		{
			name:   "columns in any order with BOM",
			csv:    "\ufeffDirector,Series_Title,Star1,Star2\nMichael Mann,Heat,Al Pacino,Robert De Niro\n",
			titles: []string{"Heat"},
			actors: [][]string{{"Al Pacino", "Robert De Niro"}},
		},
		{
			name:   "blank stars and titles skipped",
			csv:    "Series_Title,Star1,Star2,Star3\nAlien,Sigourney Weaver, ,\n  ,Nobody,,\n",
			titles: []string{"Alien"},
			actors: [][]string{{"Sigourney Weaver"}},
		},
		{
			name:   "short rows",
			csv:    "Series_Title,Genre,Star1\nSe7en\n",
			titles: []string{"Se7en"},
			actors: [][]string{nil},
		},
		{
			name:      "no title column",
			csv:       "Title,Genre\nHeat,Crime\n",
			expectErr: ErrMissingColumn,
		},
		{
			name:      "empty file",
			csv:       "",
			expectErr: ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := ReadMovies(strings.NewReader(tt.csv))
			if tt.expectErr != nil {
				assert.True(t, errors.Is(err, tt.expectErr))
				return
			}
			require.NoError(t, err)
			require.Len(t, movies, len(tt.titles))
			for i, m := range movies {
				assert.Equal(t, tt.titles[i], m.Title)
				assert.Equal(t, tt.actors[i], m.Actors)
			}
		})
	}
}
