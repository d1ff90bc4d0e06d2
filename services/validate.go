package services

import (
	"fmt"
	"regexp"

	"bizbook/models"
)

var urlPattern = regexp.MustCompile(`^https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+[-\w./?%&=]*$`)

// CreatePayload is the request body for creating a service.
type CreatePayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Price       float64  `json:"price"`
	Photos      []string `json:"photos"`
	Videos      []string `json:"videos"`
}

// UpdatePayload is the request body for partially updating a service.
// Pointer fields distinguish "absent" from "set to zero value"; fields the
// caller omits are never touched, and unknown fields are dropped during
// decoding.
type UpdatePayload struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Duration    *int      `json:"duration"`
	Price       *float64  `json:"price"`
	Photos      *[]string `json:"photos"`
	Videos      *[]string `json:"videos"`
}

// payloadError carries the detail string for request bodies that fail
// shape validation; handlers surface it as the uniform 400.
type payloadError struct{ detail string }

func (e payloadError) Error() string { return e.detail }

func schemaError() error {
	return payloadError{detail: "Validation error: Invalid request data"}
}

// Validate checks the create payload: required name, positive duration and
// price, and well-formed photo/video URLs.
func (p *CreatePayload) Validate() error {
	if p.Name == "" || p.Duration <= 0 || p.Price <= 0 {
		return schemaError()
	}
	for _, photo := range p.Photos {
		if !urlPattern.MatchString(photo) {
			return payloadError{detail: fmt.Sprintf("Invalid photo URL format: %s", photo)}
		}
	}
	for _, video := range p.Videos {
		if !urlPattern.MatchString(video) {
			return payloadError{detail: fmt.Sprintf("Invalid video URL format: %s", video)}
		}
	}
	return nil
}

// Validate checks the update payload. Only fields that are present are
// constrained; duration and price must stay positive.
func (p *UpdatePayload) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return schemaError()
	}
	if p.Duration != nil && *p.Duration <= 0 {
		return schemaError()
	}
	if p.Price != nil && *p.Price <= 0 {
		return schemaError()
	}
	return nil
}

// Merge overwrites exactly the fields present in the payload. The stored
// updated_at is intentionally left alone: it is set once at creation.
func (p *UpdatePayload) Merge(svc *models.Service) {
	if p.Name != nil {
		svc.Name = *p.Name
	}
	if p.Description != nil {
		svc.Description = *p.Description
	}
	if p.Duration != nil {
		svc.Duration = *p.Duration
	}
	if p.Price != nil {
		svc.Price = *p.Price
	}
	if p.Photos != nil {
		svc.Photos = *p.Photos
	}
	if p.Videos != nil {
		svc.Videos = *p.Videos
	}
}
