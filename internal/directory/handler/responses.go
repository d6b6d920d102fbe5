package handler

import (
	"time"

	"supportdir/internal/directory/models"
	"supportdir/internal/geo"
)

// CoordinatesResponse is the wire form of a resolved location.
type CoordinatesResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// AddressResponse is the wire form of a stored address.
type AddressResponse struct {
	Line1       string               `json:"line1"`
	Line2       string               `json:"line2,omitempty"`
	City        string               `json:"city"`
	Postcode    string               `json:"postcode"`
	Coordinates *CoordinatesResponse `json:"coordinates,omitempty"`
}

// AdministratorResponse is the wire form of a notification contact.
type AdministratorResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsSelected bool   `json:"is_selected"`
}

// OrganisationResponse is the wire form of an organisation.
type OrganisationResponse struct {
	ID                    string                  `json:"id"`
	Name                  string                  `json:"name"`
	IsVerified            bool                    `json:"is_verified"`
	LastSubstantiveUpdate time.Time               `json:"last_substantive_update"`
	UpdatedAt             time.Time               `json:"updated_at"`
	Administrators        []AdministratorResponse `json:"administrators,omitempty"`
	Address               AddressResponse         `json:"address"`

	// Warning reports a non-blocking geocode failure on the mutation that
	// produced this response.
	Warning string `json:"geocode_warning,omitempty"`
}

func toOrganisationResponse(org *models.Organisation, warning *geo.Warning) OrganisationResponse {
	resp := OrganisationResponse{
		ID:                    org.ID.String(),
		Name:                  org.Name,
		IsVerified:            org.IsVerified,
		LastSubstantiveUpdate: org.LastSubstantiveUpdate,
		UpdatedAt:             org.UpdatedAt,
		Address: AddressResponse{
			Line1:    org.Address.Line1,
			Line2:    org.Address.Line2,
			City:     org.Address.City,
			Postcode: org.Address.Postcode,
		},
	}
	if org.Address.Coordinates != nil {
		resp.Address.Coordinates = &CoordinatesResponse{
			Longitude: org.Address.Coordinates.Longitude,
			Latitude:  org.Address.Coordinates.Latitude,
		}
	}
	for _, admin := range org.Administrators {
		resp.Administrators = append(resp.Administrators, AdministratorResponse{
			Name:       admin.Name,
			Email:      admin.Email,
			IsSelected: admin.IsSelected,
		})
	}
	if warning != nil {
		resp.Warning = warning.Message
	}
	return resp
}
