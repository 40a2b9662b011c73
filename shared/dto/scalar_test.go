package dto_test

import (
	"encoding/json"
	"testing"

	"reserva/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{
			name:     "plain number",
			input:    `50000`,
			expected: 50000,
		},
		{
			name:     "numeric string",
			input:    `"50000"`,
			expected: 50000,
		},
		{
			name:     "decimal string",
			input:    `"49.90"`,
			expected: 49.90,
		},
		{
			name:    "non-numeric string",
			input:   `"lots"`,
			wantErr: true,
		},
		{
			name:     "null leaves zero",
			input:    `null`,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dto.Decimal
			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, d.Float64(), 0.0001)
		})
	}
}

func TestDecimal_RoundTrip(t *testing.T) {
	// A price stored as a string must come back to the client as a number.
	var d dto.Decimal
	require.NoError(t, json.Unmarshal([]byte(`"50000"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "50000", string(out))
}

func TestPositiveInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{
			name:     "number",
			input:    `4`,
			expected: 4,
		},
		{
			name:     "numeric string",
			input:    `"12"`,
			expected: 12,
		},
		{
			name:    "non-numeric string does not coerce to zero",
			input:   `"a few"`,
			wantErr: true,
		},
		{
			name:    "zero rejected",
			input:   `0`,
			wantErr: true,
		},
		{
			name:    "negative rejected",
			input:   `-3`,
			wantErr: true,
		},
		{
			name:    "negative string rejected",
			input:   `"-3"`,
			wantErr: true,
		},
		{
			name:    "float rejected",
			input:   `2.5`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p dto.PositiveInt
			err := json.Unmarshal([]byte(tt.input), &p)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Int())
		})
	}
}

func TestLocation_UnmarshalJSON(t *testing.T) {
	t.Run("structured address", func(t *testing.T) {
		var loc dto.Location
		require.NoError(t, json.Unmarshal([]byte(`{"street":"Jl. Melati 5","city":"Bandung"}`), &loc))

		require.NotNil(t, loc.Address)
		assert.Equal(t, "Jl. Melati 5", loc.Address.Street)
		assert.Equal(t, "Bandung", loc.Address.City)
		assert.Empty(t, loc.FreeText)
	})

	t.Run("free text", func(t *testing.T) {
		var loc dto.Location
		require.NoError(t, json.Unmarshal([]byte(`"behind the old market"`), &loc))

		assert.Nil(t, loc.Address)
		assert.Equal(t, "behind the old market", loc.FreeText)
	})

	t.Run("null is zero", func(t *testing.T) {
		var loc dto.Location
		require.NoError(t, json.Unmarshal([]byte(`null`), &loc))

		assert.True(t, loc.IsZero())
	})
}

func TestLocation_EncodeDecode(t *testing.T) {
	loc := dto.Location{Address: &dto.Address{Street: "Jl. Melati 5", City: "Bandung"}}

	stored, err := loc.Encode()
	require.NoError(t, err)

	decoded := dto.DecodeLocation(stored)
	require.NotNil(t, decoded.Address)
	assert.Equal(t, loc.Address.Street, decoded.Address.Street)
	assert.Equal(t, loc.Address.City, decoded.Address.City)
}

func TestDecodeLocation_LegacyFreeText(t *testing.T) {
	decoded := dto.DecodeLocation("just drop it at reception")

	assert.Nil(t, decoded.Address)
	assert.Equal(t, "just drop it at reception", decoded.FreeText)
}
