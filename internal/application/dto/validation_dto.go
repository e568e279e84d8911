package dto

// ValidationRequest cuerpo de POST /validation/:type.
type ValidationRequest struct {
	Identification string `json:"identification"`
	NIT            string `json:"nit"`
}

// Value identificador enviado en cualquiera de los dos campos.
func (r ValidationRequest) Value() string {
	return firstNonEmpty(r.Identification, r.NIT)
}

// ValidationResponse resultado de la fase de verificación del identificador.
type ValidationResponse struct {
	Valid          bool                  `json:"valid"`
	Message        string                `json:"message"`
	Reason         string                `json:"reason,omitempty"`
	Identification string                `json:"identification,omitempty"`
	Normalized     string                `json:"normalized,omitempty"`
	CheckDigit     string                `json:"checkDigit,omitempty"`
	Data           *RegistrationResponse `json:"data,omitempty"`
}
