package domain

// Movie is the canonical movie entity. Score and Count are derived from the
// movie's scores and are only written by score submission.
type Movie struct {
	ID    int64
	Title string
	Score float64
	Count int
	Image string
}

// MovieDTO is the view of a movie returned to callers.
type MovieDTO struct {
	ID    int64   `json:"id"`
	Title string  `json:"title" validate:"required,min=5,max=80"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
	Image string  `json:"image" validate:"omitempty,url"`
}

// NewMovieDTO builds the view of a stored movie.
func NewMovieDTO(m Movie) MovieDTO {
	return MovieDTO{
		ID:    m.ID,
		Title: m.Title,
		Score: m.Score,
		Count: m.Count,
		Image: m.Image,
	}
}
