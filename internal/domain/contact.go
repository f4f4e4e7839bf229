package domain

import "fmt"

// Address is the postal address of a contact.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
}

// Contact is an entry in the address book, identified by its index.
type Contact struct {
	Index       int      `json:"index"`
	DateOfBirth string   `json:"dateOfBirth"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Username    string   `json:"username"`
	Company     string   `json:"company"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	Address     Address  `json:"address"`
	JobPosition string   `json:"jobPosition,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Active      bool     `json:"active"`
}

// Validate checks the invariants storage relies on. Field formats are the
// request schema's concern.
func (c *Contact) Validate() error {
	if c.Index < 1 {
		return fmt.Errorf("%w: %w (got %d)", ErrValidation, ErrInvalidIndex, c.Index)
	}
	return nil
}
