// Package contacts stores the named phone numbers the bot can report on.
package contacts

import (
	"context"
	"errors"
	"strings"
)

// LineType mirrors the "type" column of the contacts table.
type LineType string

const (
	LineTypeMobile   LineType = "mobile"
	LineTypeLandline LineType = "landline"
)

// ErrInvalidContact is returned when a contact is missing its phone or name.
var ErrInvalidContact = errors.New("contacts: phone and name are required")

// Contact is a named phone number. Phone is always canonical ("+963…").
type Contact struct {
	Phone string
	Name  string
	Type  LineType
}

func (c Contact) validate() error {
	if strings.TrimSpace(c.Phone) == "" || strings.TrimSpace(c.Name) == "" {
		return ErrInvalidContact
	}
	switch c.Type {
	case LineTypeMobile, LineTypeLandline:
		return nil
	default:
		return ErrInvalidContact
	}
}

// Repository looks up contacts by their canonical phone. A missing contact is
// reported as (nil, nil).
type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*Contact, error)
}

// DefaultSeed is written to an empty contacts table on first start.
var DefaultSeed = []Contact{
	{Phone: "+963933123456", Name: "محمد أحمد", Type: LineTypeMobile},
	{Phone: "+963944556677", Name: "سارة خليل", Type: LineTypeMobile},
	{Phone: "+963988765432", Name: "علي حسن", Type: LineTypeMobile},
	{Phone: "+963112345678", Name: "مكتب دمشق", Type: LineTypeLandline},
	{Phone: "+963212345678", Name: "مكتب حلب", Type: LineTypeLandline},
}
