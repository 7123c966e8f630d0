package domain

import "time"

// Service is a public offering listed in the catalog. The slug is a unique,
// lowercase public identifier usable in place of the ID.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Slug        string    `json:"slug"`
	IsArchived  bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Project is a portfolio entry. Archiving hides it from public listings
// without deleting it.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	MainImage    string    `json:"mainImage,omitempty"`
	ExternalLink string    `json:"externalLink,omitempty"`
	IsArchived   bool      `json:"isArchived"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProjectImage is a gallery image belonging to a project.
type ProjectImage struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	ImageURL  string `json:"imageUrl"`
}
