package models

import "time"

// Review represents a rating scoped to one bootcamp and one author.
// A user may review a given bootcamp at most once.
type Review struct {
	ID         int       `json:"id"`
	BootcampID int       `json:"bootcampId"`
	UserID     int       `json:"userId"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateReviewRequest represents a review creation request
type CreateReviewRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// UpdateReviewRequest represents a review update; nil fields are left unchanged
type UpdateReviewRequest struct {
	Title  *string `json:"title"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}
