package dto

import "time"

// VendorRequest alta/edición de vendedor. Solo Name es obligatorio en alta.
type VendorRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// VendorResponse representación de vendedor en la API.
type VendorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
