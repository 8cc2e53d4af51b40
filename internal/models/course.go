package models

import "time"

// MinimumSkill is the entry skill level required by a course
type MinimumSkill string

// Minimum skill levels
const (
	SkillBeginner     MinimumSkill = "beginner"
	SkillIntermediate MinimumSkill = "intermediate"
	SkillAdvanced     MinimumSkill = "advanced"
)

// Valid reports whether the skill level is one of the known levels
func (s MinimumSkill) Valid() bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}

// Course represents a course scoped to one bootcamp.
// The bootcamp reference is immutable after creation.
type Course struct {
	ID                   int          `json:"id"`
	BootcampID           int          `json:"bootcampId"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Weeks                int          `json:"weeks"`
	Tuition              int          `json:"tuition"`
	MinimumSkill         MinimumSkill `json:"minimumSkill"`
	ScholarshipAvailable bool         `json:"scholarshipAvailable"`
	CreatedAt            time.Time    `json:"createdAt"`

	// Bootcamp summary included on top-level course listings
	Bootcamp *BootcampSummary `json:"bootcamp,omitempty"`
}

// BootcampSummary is the bootcamp projection joined onto course listings
type BootcampSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Weeks                int          `json:"weeks"`
	Tuition              int          `json:"tuition"`
	MinimumSkill         MinimumSkill `json:"minimumSkill"`
	ScholarshipAvailable bool         `json:"scholarshipAvailable"`
}

// UpdateCourseRequest represents a course update; nil fields are left unchanged
type UpdateCourseRequest struct {
	Title                *string       `json:"title"`
	Description          *string       `json:"description"`
	Weeks                *int          `json:"weeks"`
	Tuition              *int          `json:"tuition"`
	MinimumSkill         *MinimumSkill `json:"minimumSkill"`
	ScholarshipAvailable *bool         `json:"scholarshipAvailable"`
}
