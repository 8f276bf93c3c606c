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

// BooksPageSize is the Google Books maximum for maxResults.
const BooksPageSize = 40

// BooksClient reads the Google Books v1 volumes API.
type BooksClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Subtitle      string   `json:"subtitle"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PublishedDate string   `json:"publishedDate"`
		Categories    []string `json:"categories"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type volumesPage struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

func NewBooksClient(baseURL, apiKey string) *BooksClient {
	return &BooksClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
	}
}

// SearchBooks returns the volumes matching query starting at startIndex,
// and the total match count. The API key is optional.
func (c *BooksClient) SearchBooks(ctx context.Context, query string, startIndex int) ([]db.Book, int, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(BooksPageSize))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	resp, err := getJSON[volumesPage](ctx, c.httpClient, c.baseURL+"/books/v1/volumes?"+params.Encode())
	if err != nil {
		return nil, 0, fmt.Errorf("google books %q at %d: %w", query, startIndex, err)
	}

	books := make([]db.Book, 0, len(resp.Items))
	for _, v := range resp.Items {
		if v.ID == "" || v.VolumeInfo.Title == "" {
			continue
		}
		books = append(books, toBook(v))
	}
	return books, resp.TotalItems, nil
}

func toBook(v volume) db.Book {
	info := v.VolumeInfo
	ext := "gbooks:" + v.ID
	title := info.Title
	if info.Subtitle != "" {
		title += ": " + info.Subtitle
	}
	out := db.Book{
		ExternalID:    &ext,
		Title:         title,
		Authors:       info.Authors,
		Description:   info.Description,
		PublishedYear: yearOf(info.PublishedDate),
		// covers come back as http urls
		CoverURL: strings.Replace(info.ImageLinks.Thumbnail, "http://", "https://", 1),
		Genres:   info.Categories,
	}
	if out.Authors == nil {
		out.Authors = []string{}
	}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	return out
}
