package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_RawIdentifierSkipsBlankAliases(t *testing.T) {
	tests := map[string]struct {
		req  RegisterRequest
		want string
	}{
		"identification tiene prioridad": {RegisterRequest{Identification: "900674335", NIT: "811033098"}, "900674335"},
		"identification en blanco usa nit": {RegisterRequest{Identification: "  ", NIT: "900674335"}, "900674335"},
		"cae hasta identificationNumber":   {RegisterRequest{Identification: "\t", NIT: " ", IdentificationNumber: "1020304050"}, "1020304050"},
		"todos vacíos":                     {RegisterRequest{Identification: " "}, ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.RawIdentifier())
		})
	}
}

func TestRegisterRequest_CompanyNameValueSkipsBlankName(t *testing.T) {
	req := RegisterRequest{Name: "   ", CompanyName: "Acme SAS"}
	assert.Equal(t, "Acme SAS", req.CompanyNameValue())
}

func TestValidationRequest_Value(t *testing.T) {
	assert.Equal(t, "900674335", ValidationRequest{Identification: " ", NIT: "900674335"}.Value())
}
