package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API JSON.
// @Description Estrutura padronizada para respostas de erro na API JSON.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"Title must be at least 3 characters"`
}
