package dto

import (
	"encoding/json"
	"strings"
)

// Address is a structured delivery address.
type Address struct {
	Street     string `json:"street"             validate:"omitempty,max=200"`
	City       string `json:"city"               validate:"omitempty,max=100"`
	Province   string `json:"province,omitempty" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code,omitempty"`
	Latitude   string `json:"latitude,omitempty"`
	Longitude  string `json:"longitude,omitempty"`
}

// Location is either a structured Address or a free-text string. The wire
// format accepts both a JSON object and a plain JSON string; storage keeps
// whichever form was supplied.
type Location struct {
	Address  *Address
	FreeText string
}

func (l *Location) IsZero() bool {
	return l == nil || (l.Address == nil && l.FreeText == "")
}

func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))

	if trimmed == "null" {
		*l = Location{}

		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		var addr Address
		if err := json.Unmarshal(data, &addr); err != nil {
			return err
		}

		l.Address = &addr
		l.FreeText = ""

		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}

	l.Address = nil
	l.FreeText = text

	return nil
}

func (l Location) MarshalJSON() ([]byte, error) {
	if l.Address != nil {
		return json.Marshal(l.Address)
	}

	return json.Marshal(l.FreeText)
}

// Encode serializes the location for column storage: structured addresses
// as a JSON object, free text as-is.
func (l *Location) Encode() (string, error) {
	if l.Address != nil {
		raw, err := json.Marshal(l.Address)
		if err != nil {
			return "", err
		}

		return string(raw), nil
	}

	return l.FreeText, nil
}

// DecodeLocation restores a Location from its stored column form. Values
// written by older clients may be plain strings; those come back as
// free text.
func DecodeLocation(stored string) Location {
	trimmed := strings.TrimSpace(stored)

	if strings.HasPrefix(trimmed, "{") {
		var addr Address
		if err := json.Unmarshal([]byte(trimmed), &addr); err == nil {
			return Location{Address: &addr}
		}
	}

	return Location{FreeText: stored}
}
