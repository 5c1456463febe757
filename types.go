package siteapi

import (
	"fmt"
	"time"
)

// Status is the publication state of a Project or BlogPost. Only two values
// exist on the wire; anything else is rejected at the boundary instead of
// being stored as an unpublishable typo.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ParseStatus validates a caller-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Project is a portfolio entry. Slug is the public lookup key; only
// published projects are visible on public routes.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     *string   `json:"summary"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	LinkURL     *string   `json:"link_url"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BlogPost is a blog entry. PublishedAt is caller-supplied and independent
// of Status; public ordering prefers it over CreatedAt when present.
type BlogPost struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       *string   `json:"excerpt"`
	Content       string    `json:"content"`
	CoverImageURL *string   `json:"cover_image_url"`
	Status        Status    `json:"status"`
	PublishedAt   *string   `json:"published_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ContactSubmission is an inbound contact form record. Write-once; the API
// never updates or deletes these.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Inbound request bodies. The frontend sends camelCase; records go back out
// snake_case, matching the shapes the admin UI binds to.

type ContactRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

type ProjectInput struct {
	Title       string  `json:"title" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	LinkURL     *string `json:"linkUrl"`
	Status      *string `json:"status"`
}

// ProjectPatch is a partial update: nil fields keep their stored value, an
// explicit empty string overwrites.
type ProjectPatch struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	LinkURL     *string `json:"linkUrl"`
	Status      *string `json:"status"`
}

type BlogPostInput struct {
	Title         string  `json:"title" validate:"required"`
	Slug          string  `json:"slug" validate:"required"`
	Excerpt       *string `json:"excerpt"`
	Content       string  `json:"content" validate:"required"`
	CoverImageURL *string `json:"coverImageUrl"`
	Status        *string `json:"status"`
	PublishedAt   *string `json:"publishedAt"`
}

type BlogPostPatch struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Excerpt       *string `json:"excerpt"`
	Content       *string `json:"content"`
	CoverImageURL *string `json:"coverImageUrl"`
	Status        *string `json:"status"`
	PublishedAt   *string `json:"publishedAt"`
}

type UploadRequest struct {
	FileName string `json:"fileName" validate:"required"`
	DataURL  string `json:"dataUrl" validate:"required"`
}
