package handler

import (
	"strings"

	"supportdir/internal/directory/models"
	"supportdir/pkg/derrors"
)

// AddressRequest is the wire form of a postal address.
type AddressRequest struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

func (r AddressRequest) toModel() models.Address {
	return models.Address{
		Line1:    strings.TrimSpace(r.Line1),
		Line2:    strings.TrimSpace(r.Line2),
		City:     strings.TrimSpace(r.City),
		Postcode: r.Postcode,
	}
}

// AdministratorRequest is the wire form of a notification contact.
type AdministratorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsSelected bool   `json:"is_selected"`
}

// CreateOrganisationRequest registers a new organisation.
type CreateOrganisationRequest struct {
	Name           string                 `json:"name"`
	Administrators []AdministratorRequest `json:"administrators,omitempty"`
	Address        AddressRequest         `json:"address"`
}

// Validate enforces the minimal wire contract.
func (r CreateOrganisationRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return derrors.New(derrors.CategoryValidation, "directory.create", "name is required", nil)
	}
	for _, admin := range r.Administrators {
		if admin.IsSelected && strings.TrimSpace(admin.Email) == "" {
			return derrors.New(derrors.CategoryValidation, "directory.create", "selected administrator needs an email", nil)
		}
	}
	return nil
}

func (r CreateOrganisationRequest) toModel() *models.Organisation {
	org := &models.Organisation{
		Name:    strings.TrimSpace(r.Name),
		Address: r.Address.toModel(),
	}
	for _, admin := range r.Administrators {
		org.Administrators = append(org.Administrators, models.Administrator{
			Name:       strings.TrimSpace(admin.Name),
			Email:      strings.TrimSpace(admin.Email),
			IsSelected: admin.IsSelected,
		})
	}
	return org
}

// UpdateAddressRequest replaces an organisation's address.
type UpdateAddressRequest struct {
	Address AddressRequest `json:"address"`
}
