package entity

import (
	"time"
)

type Movie struct {
	Record
	Title       string     `db:"title"`
	Genre       string     `db:"genre"`
	Duration    int        `db:"duration"` // minutes
	Synopsis    string     `db:"synopsis"`
	Director    string     `db:"director"`
	Cast        string     `db:"cast_members"`
	PosterURL   string     `db:"poster_url"`
	TrailerURL  string     `db:"trailer_url"`
	Rating      float64    `db:"rating"`
	ReleaseDate *time.Time `db:"release_date"`
	EndDate     *time.Time `db:"end_date"`
}
