// Package models - system data models
package models

import (
	"strings"
	"time"
)

// Field length limits
const (
	// MaxNameLength max length of a herb name
	MaxNameLength = 100
	// MaxFarmerLength max length of a farmer name
	MaxFarmerLength = 100
	// MaxLocationLength max length of a location description
	MaxLocationLength = 200
)

// Herb a herb provenance record
type Herb struct {
	// ID record ID, derived from name and farmer
	ID string `json:"id" validate:"required,herb_id"`

	// Name herb name
	Name string `json:"name" validate:"required,max=100"`

	// Farmer the farmer who grew the herb
	Farmer string `json:"farmer" validate:"required,max=100"`

	// Location where the herb was grown
	Location string `json:"location" validate:"required,max=200"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at" validate:"required"`
}

// HerbWithQR a herb record along with its QR code as a PNG data URI
type HerbWithQR struct {
	Herb
	// QRCode base64 PNG data URI
	QRCode string `json:"qr_code"`
}

// NewHerbRequest parameters for defining a new herb record
type NewHerbRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Farmer   string `json:"farmer" validate:"required,max=100"`
	Location string `json:"location" validate:"required,max=200"`
}

// Normalize trim surrounding white space from all fields
func (r *NewHerbRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Farmer = strings.TrimSpace(r.Farmer)
	r.Location = strings.TrimSpace(r.Location)
}

// HerbUpdateRequest partial update of a herb record. Nil fields are left untouched.
type HerbUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Farmer   *string `json:"farmer,omitempty" validate:"omitempty,min=1,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
}

// Normalize trim surrounding white space from all supplied fields
func (r *HerbUpdateRequest) Normalize() {
	for _, field := range []*string{r.Name, r.Farmer, r.Location} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// ApplyTo apply the supplied fields onto a herb record. ID and CreatedAt are never changed.
func (r HerbUpdateRequest) ApplyTo(herb *Herb) {
	if r.Name != nil {
		herb.Name = *r.Name
	}
	if r.Farmer != nil {
		herb.Farmer = *r.Farmer
	}
	if r.Location != nil {
		herb.Location = *r.Location
	}
}

// ScanRequest scanned QR code text to resolve
type ScanRequest struct {
	Data string `json:"data"`
}
