package request

// MovieRequest is used for both create and full update. Dates accept
// RFC3339 or YYYY-MM-DD.
type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Genre       string   `json:"genre" validate:"max=100"`
	Duration    int      `json:"duration" validate:"gte=0,max=999"`
	Synopsis    string   `json:"synopsis"`
	Director    string   `json:"director" validate:"max=200"`
	Cast        string   `json:"cast"`
	PosterURL   string   `json:"poster_url" validate:"omitempty,url"`
	TrailerURL  string   `json:"trailer_url" validate:"omitempty,url"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	ReleaseDate string   `json:"release_date"`
	EndDate     string   `json:"end_date"`
}

type MovieListRequest struct {
	PaginatedRequest
	Search string
}
