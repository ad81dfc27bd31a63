package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestValidateNotBlank(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr bool
	}{
		{"valid reason", "RIB invalide", false},
		{"empty", "", true},
		{"only spaces", "    ", true},
		{"only tabs", "\t\t", true},
		{"leading spaces ok", "  fraude", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RejectRequest{Reason: tt.reason}
			err := binding.Validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeStruct_TrimsStrings(t *testing.T) {
	type sample struct {
		Name  string
		Note  *string
		Count int
	}

	note := "  avec espaces  "
	s := &sample{Name: "  Amine  ", Note: &note, Count: 3}
	SanitizeStruct(s)

	assert.Equal(t, "Amine", s.Name)
	assert.Equal(t, "avec espaces", *s.Note)
	assert.Equal(t, 3, s.Count)
}

func TestSanitizeStruct_PreservesContent(t *testing.T) {
	type sample struct{ Reason string }

	// Apostrophes and accents must survive untouched.
	s := &sample{Reason: "  L'IBAN n'est pas valide  "}
	SanitizeStruct(s)
	assert.Equal(t, "L'IBAN n'est pas valide", s.Reason)
}

func TestSanitizeStruct_NonStructIsNoop(t *testing.T) {
	x := 5
	SanitizeStruct(&x)
	SanitizeStruct(nil)
	assert.Equal(t, 5, x)
}
