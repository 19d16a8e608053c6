package product

import "math"

// MaxStars is the top of the rating scale.
const MaxStars = 5

// Stars describes how a rating renders on a five-star scale.
type Stars struct {
	Full    int     `json:"full"`
	Partial float64 `json:"partial"` // fill percentage of the partial star, 0 when none
	Empty   int     `json:"empty"`
}

// StarBreakdown converts a rating into full, partial and empty stars.
// Ratings are clamped to [0, MaxStars].
func StarBreakdown(rating float64) Stars {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}
	full := int(math.Floor(rating))
	frac := rating - float64(full)
	s := Stars{Full: full}
	if frac > 0 {
		s.Partial = frac * 100
		s.Empty = MaxStars - full - 1
	} else {
		s.Empty = MaxStars - full
	}
	return s
}
