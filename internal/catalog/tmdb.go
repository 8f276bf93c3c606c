package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/oggyb/reelread/internal/db"
)

const tmdbImageBase = "https://image.tmdb.org/t/p/w500"

// tmdbGenres maps TMDB movie genre ids to names.
var tmdbGenres = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance", 878: "Science Fiction",
	10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
}

// TMDBClient reads the TMDB v3 API.
type TMDBClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type tmdbMovie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	GenreIDs    []int  `json:"genre_ids"`
}

type tmdbPage struct {
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Results    []tmdbMovie `json:"results"`
}

func NewTMDBClient(baseURL, apiKey string) *TMDBClient {
	return &TMDBClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
	}
}

// PopularMovies returns one page of /3/movie/popular as Movie rows and the
// total page count reported by TMDB.
func (c *TMDBClient) PopularMovies(ctx context.Context, page int) ([]db.Movie, int, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("page", strconv.Itoa(page))

	resp, err := getJSON[tmdbPage](ctx, c.httpClient, c.baseURL+"/3/movie/popular?"+params.Encode())
	if err != nil {
		return nil, 0, fmt.Errorf("tmdb popular page %d: %w", page, err)
	}

	movies := make([]db.Movie, 0, len(resp.Results))
	for _, m := range resp.Results {
		if m.ID == 0 || m.Title == "" {
			continue
		}
		movies = append(movies, toMovie(m))
	}
	return movies, resp.TotalPages, nil
}

func toMovie(m tmdbMovie) db.Movie {
	ext := "tmdb:" + strconv.FormatInt(m.ID, 10)
	out := db.Movie{
		ExternalID:  &ext,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseYear: yearOf(m.ReleaseDate),
		Genres:      []string{},
	}
	if m.PosterPath != "" {
		out.PosterURL = tmdbImageBase + m.PosterPath
	}
	for _, id := range m.GenreIDs {
		if name, ok := tmdbGenres[id]; ok {
			out.Genres = append(out.Genres, name)
		}
	}
	return out
}
