package handler

// --- Request types for catalog mutations ---

type createServiceRequest struct {
	Title       string `json:"title"       validate:"required,min=2"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"       validate:"omitempty,url"`
	Slug        string `json:"slug"`
}

// Pointer fields distinguish "not sent" from "set to zero value".
type updateServiceRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=2"`
	Description *string `json:"description"`
	Image       *string `json:"image"       validate:"omitempty,url"`
	Slug        *string `json:"slug"`
	IsArchived  *bool   `json:"isArchived"`
}

type createProjectRequest struct {
	Title        string `json:"title"        validate:"required,min=2"`
	Category     string `json:"category"     validate:"required"`
	Description  string `json:"description"`
	MainImage    string `json:"mainImage"    validate:"omitempty,url"`
	ExternalLink string `json:"externalLink" validate:"omitempty,url"`
}

type updateProjectRequest struct {
	Title        *string `json:"title"        validate:"omitempty,min=2"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	MainImage    *string `json:"mainImage"    validate:"omitempty,url"`
	ExternalLink *string `json:"externalLink" validate:"omitempty,url"`
	IsArchived   *bool   `json:"isArchived"`
}

type addProjectImageRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	ImageURL  string `json:"imageUrl"  validate:"required,url"`
}
