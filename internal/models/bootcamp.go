package models

import "time"

// Bootcamp represents a published bootcamp owned by a publisher or admin
type Bootcamp struct {
	ID            int      `json:"id"`
	UserID        int      `json:"userId"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Website       string   `json:"website,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	City          string   `json:"city,omitempty"`
	Zipcode       string   `json:"zipcode,omitempty"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	Photo         string   `json:"photo,omitempty"`

	// Aggregates recomputed from child courses and reviews
	AverageCost   *int     `json:"averageCost,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// CreateBootcampRequest represents a bootcamp creation request
type CreateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
}

// UpdateBootcampRequest represents a bootcamp update; nil fields are left unchanged
type UpdateBootcampRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
}
