package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AckResponse confirmación simple sin datos del ledger.
type AckResponse struct {
	OK bool `json:"ok"`
}
