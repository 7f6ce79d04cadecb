package models

import "time"

// Location is a physical storage spot for samples (building + area code).
// Unlike packaging and users, locations are hard-deleted.
type Location struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Building    string     `json:"building"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   *string    `json:"created_by"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	UpdatedBy   *string    `json:"updated_by,omitempty"`
}

// CreateLocationRequest is the POST /locations body.
type CreateLocationRequest struct {
	Code        string  `json:"code"`
	Building    string  `json:"building"`
	Description *string `json:"description"`
}

// UpdateLocationRequest is the PATCH /locations/:id body.
type UpdateLocationRequest struct {
	Code        *string `json:"code"`
	Building    *string `json:"building"`
	Description *string `json:"description"`
}
