package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decimal is a non-negative monetary value that tolerates clients sending
// either a JSON number or a numeric string. It always serializes back as a
// number.
type Decimal float64

func (d *Decimal) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}

		raw = strings.TrimSpace(str)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", raw)
	}

	*d = Decimal(value)

	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', -1, 64)), nil
}

func (d Decimal) Float64() float64 {
	return float64(d)
}

// PositiveInt parses strictly: a JSON number or numeric string greater
// than zero. Anything non-numeric is an unmarshal error rather than a
// silent zero, and zero or negative values are rejected outright.
type PositiveInt int

func (p *PositiveInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}

		raw = strings.TrimSpace(str)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer value %q", raw)
	}

	if value <= 0 {
		return fmt.Errorf("value %d must be a positive integer", value)
	}

	*p = PositiveInt(value)

	return nil
}

func (p PositiveInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(p))), nil
}

func (p PositiveInt) Int() int {
	return int(p)
}
