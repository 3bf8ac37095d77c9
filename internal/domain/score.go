package domain

// Score is a single user's score for a movie. A user holds at most one score
// per movie.
type Score struct {
	MovieID int64
	UserID  int64
	Value   float64
}

// ScoreDTO is the payload of a score submission.
type ScoreDTO struct {
	MovieID int64   `json:"movieId" validate:"required,gt=0"`
	Score   float64 `json:"score" validate:"gte=0,lte=5"`
}

// Aggregate returns the arithmetic mean of the score values and their count.
// An empty slice yields a zero mean.
func Aggregate(scores []Score) (float64, int) {
	if len(scores) == 0 {
		return 0, 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Value
	}
	return sum / float64(len(scores)), len(scores)
}
