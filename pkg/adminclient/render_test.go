package adminclient

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "En attente", StatusLabel("pending"))
	assert.Equal(t, "Approuvée", StatusLabel("approved"))
	assert.Equal(t, "Rejetée", StatusLabel("rejected"))
	// Unknown statuses surface as-is.
	assert.Equal(t, "archived", StatusLabel("archived"))
}

func TestStatusToTone(t *testing.T) {
	assert.Equal(t, ToneWarning, StatusToTone("pending"))
	assert.Equal(t, ToneSuccess, StatusToTone("approved"))
	assert.Equal(t, ToneDanger, StatusToTone("rejected"))
	assert.Equal(t, ToneNeutral, StatusToTone("whatever"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "120.50€", FormatAmount(NewAmount(decimal.RequireFromString("120.5"))))
	assert.Equal(t, "80.00€", FormatAmount(NewAmount(decimal.NewFromInt(80))))
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"string decimal", `"120.50"`, "120.50"},
		{"bare number", `120.5`, "120.50"},
		{"integer", `80`, "80.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.in), &a))
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestAmount_UnmarshalJSON_Garbage(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}
