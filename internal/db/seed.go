package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var seedTables = []string{
	"notifications", "device_tokens", "friendships", "collections",
	"reviews", "books", "movies", "profiles",
}

var seedMovies = []Movie{
	{Title: "Arrival", ReleaseYear: 2016, Genres: []string{"Drama", "Science Fiction"}},
	{Title: "Paddington 2", ReleaseYear: 2017, Genres: []string{"Comedy", "Family"}},
	{Title: "Parasite", ReleaseYear: 2019, Genres: []string{"Thriller", "Drama"}},
	{Title: "Spirited Away", ReleaseYear: 2001, Genres: []string{"Animation", "Fantasy"}},
	{Title: "Heat", ReleaseYear: 1995, Genres: []string{"Crime", "Thriller"}},
	{Title: "The Grand Budapest Hotel", ReleaseYear: 2014, Genres: []string{"Comedy"}},
}

var seedBooks = []Book{
	{Title: "Piranesi", Authors: []string{"Susanna Clarke"}, PublishedYear: 2020, Genres: []string{"Fantasy"}},
	{Title: "The Left Hand of Darkness", Authors: []string{"Ursula K. Le Guin"}, PublishedYear: 1969, Genres: []string{"Science Fiction"}},
	{Title: "Middlemarch", Authors: []string{"George Eliot"}, PublishedYear: 1871, Genres: []string{"Classics"}},
	{Title: "Project Hail Mary", Authors: []string{"Andy Weir"}, PublishedYear: 2021, Genres: []string{"Science Fiction"}},
}

// SeedTestData resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears every table.
//  2. Creates 8 profiles, the demo movies and books.
//  3. Writes reviews spread over the last two months (~80% rated, ~50% with text)
//     and fills in the aggregate rating fields from them.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range seedTables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	profiles := make([]Profile, 0, 8)
	for i := 1; i <= 8; i++ {
		profiles = append(profiles, Profile{
			ID:       uuid.NewString(),
			Username: fmt.Sprintf("reader%d", i),
		})
	}
	if err := db.Create(&profiles).Error; err != nil {
		return fmt.Errorf("failed to seed profiles: %w", err)
	}

	movies := append([]Movie(nil), seedMovies...)
	if err := db.Create(&movies).Error; err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}
	books := append([]Book(nil), seedBooks...)
	if err := db.Create(&books).Error; err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}
	log.Printf("Seeded %d profiles, %d movies, %d books.", len(profiles), len(movies), len(books))

	now := time.Now().UTC()
	count := 0
	for _, p := range profiles {
		for i := range movies {
			if r.Intn(100) < 50 {
				continue
			}
			rv := randomReview(r, p.ID, now)
			rv.MovieID = &movies[i].ID
			if err := db.Create(&rv).Error; err != nil {
				return fmt.Errorf("failed to seed review: %w", err)
			}
			count++
		}
		for i := range books {
			if r.Intn(100) < 50 {
				continue
			}
			rv := randomReview(r, p.ID, now)
			rv.BookID = &books[i].ID
			if err := db.Create(&rv).Error; err != nil {
				return fmt.Errorf("failed to seed review: %w", err)
			}
			count++
		}
	}
	log.Printf("Seeded %d reviews.", count)

	return refreshAggregates(db)
}

func randomReview(r *rand.Rand, userID string, now time.Time) Review {
	rv := Review{UserID: userID}
	if r.Intn(100) < 80 {
		v := r.Intn(5) + 1
		rv.Rating = &v
	}
	if r.Intn(100) < 50 {
		rv.Body = "Seeded thoughts, would revisit."
	}
	ts := now.Add(-time.Duration(r.Intn(60*24)) * time.Hour)
	rv.CreatedAt, rv.UpdatedAt = ts, ts
	return rv
}

// refreshAggregates recomputes avg_rating / rating_count for all media in one statement per table.
func refreshAggregates(db *gorm.DB) error {
	stmts := []string{
		`UPDATE movies SET
			rating_count = (SELECT COUNT(rating) FROM reviews WHERE reviews.movie_id = movies.id),
			avg_rating = (SELECT ROUND(AVG(rating), 1) FROM reviews WHERE reviews.movie_id = movies.id)`,
		`UPDATE books SET
			rating_count = (SELECT COUNT(rating) FROM reviews WHERE reviews.book_id = books.id),
			avg_rating = (SELECT ROUND(AVG(rating), 1) FROM reviews WHERE reviews.book_id = books.id)`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("failed to refresh aggregates: %w", err)
		}
	}
	return nil
}
