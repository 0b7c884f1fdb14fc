// AngelaMos | 2026
// dto_test.go

package auth

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_SecurityQuestionsAllOrNothing(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	base := RegisterRequest{
		Email:     "maker@example.com",
		Password:  "longenough1",
		FirstName: "Ada",
		LastName:  "Craft",
	}

	full := base
	full.SecurityQuestion1 = "First pet's name?"
	full.SecurityAnswer1 = "Fluffy"
	full.SecurityQuestion2 = "City of birth?"
	full.SecurityAnswer2 = "Lisbon"

	tests := []struct {
		name    string
		mutate  func(r *RegisterRequest)
		wantErr bool
	}{
		{"none supplied", func(r *RegisterRequest) {}, false},
		{"all four supplied", func(r *RegisterRequest) { *r = full }, false},
		{"question without answer", func(r *RegisterRequest) {
			r.SecurityQuestion1 = "First pet's name?"
		}, true},
		{"answer without question", func(r *RegisterRequest) {
			r.SecurityAnswer1 = "Fluffy"
		}, true},
		{"only first pair", func(r *RegisterRequest) {
			r.SecurityQuestion1 = "First pet's name?"
			r.SecurityAnswer1 = "Fluffy"
		}, true},
		{"only second pair", func(r *RegisterRequest) {
			r.SecurityQuestion2 = "City of birth?"
			r.SecurityAnswer2 = "Lisbon"
		}, true},
		{"second answer missing", func(r *RegisterRequest) {
			*r = full
			r.SecurityAnswer2 = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)

			err := validate.Struct(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
