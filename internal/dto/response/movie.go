package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type MovieResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Genre       string     `json:"genre"`
	Duration    int        `json:"duration"`
	Synopsis    string     `json:"synopsis"`
	Director    string     `json:"director"`
	Cast        string     `json:"cast"`
	PosterURL   string     `json:"poster_url"`
	TrailerURL  string     `json:"trailer_url"`
	Rating      float64    `json:"rating"`
	ReleaseDate *time.Time `json:"release_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func MovieToResponse(m *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Genre:       m.Genre,
		Duration:    m.Duration,
		Synopsis:    m.Synopsis,
		Director:    m.Director,
		Cast:        m.Cast,
		PosterURL:   m.PosterURL,
		TrailerURL:  m.TrailerURL,
		Rating:      m.Rating,
		ReleaseDate: m.ReleaseDate,
		EndDate:     m.EndDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
