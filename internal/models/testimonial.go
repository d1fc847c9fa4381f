package models

import "time"

type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "pending"
	TestimonialApproved TestimonialStatus = "approved"
	TestimonialRejected TestimonialStatus = "rejected"
)

type Testimonial struct {
	ID             int64             `json:"id"`
	SchoolID       *int64            `json:"school_id,omitempty"`
	AuthorID       int64             `json:"author_id"`
	AuthorName     string            `json:"author_name,omitempty"`
	Content        string            `json:"content"`
	Rating         int               `json:"rating"`
	SentimentScore float64           `json:"sentiment_score"`
	SentimentLabel string            `json:"sentiment_label"`
	Status         TestimonialStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}

type CreateTestimonialRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type ModerateTestimonialRequest struct {
	Status TestimonialStatus `json:"status"`
}
