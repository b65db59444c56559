package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoRecipes.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION", "NOT_FOUND", "NETWORK")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
// Field é opcional e aponta o campo do formulário que falhou.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewFieldError cria um erro de validação associado a um campo.
func NewFieldError(field, msg string) AppError {
	return &ValidationError{Field: field, Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// UnauthorizedError indica que a ação exige uma sessão ativa.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um erro de autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// --- Erros da API externa ---

// HTTPError representa uma resposta não-2xx da API de receitas.
// Body guarda o corpo já normalizado (sempre um objeto JSON).
type HTTPError struct {
	Status int
	Body   json.RawMessage
	Msg    string
}

func (e *HTTPError) Error() string    { return e.Msg }
func (e *HTTPError) Category() string { return "API_ERROR" }
func (e *HTTPError) HTTPStatus() int {
	if e.Status >= 400 && e.Status < 600 {
		return e.Status
	}
	return http.StatusBadGateway
}
func (e *HTTPError) Unwrap() error { return nil }

// NewHTTPError cria um erro de resposta da API.
func NewHTTPError(status int, body json.RawMessage, msg string) *HTTPError {
	return &HTTPError{Status: status, Body: body, Msg: msg}
}

// AuthError representa credenciais rejeitadas pelos endpoints de login/registro.
type AuthError struct {
	Status int
	Msg    string
	Err    error
}

func (e *AuthError) Error() string    { return e.Msg }
func (e *AuthError) Category() string { return "AUTH_ERROR" }
func (e *AuthError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *AuthError) Unwrap() error    { return e.Err }

// NewAuthError encapsula o HTTPError original do endpoint de autenticação.
func NewAuthError(httpErr *HTTPError) AppError {
	return &AuthError{Status: httpErr.Status, Msg: httpErr.Msg, Err: httpErr}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// NetworkError representa falha de transporte (conexão recusada, DNS, corpo ilegível).
type NetworkError struct {
	Msg string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
}
func (e *NetworkError) Category() string { return "NETWORK_ERROR" }
func (e *NetworkError) HTTPStatus() int  { return http.StatusBadGateway } // 502
func (e *NetworkError) Unwrap() error    { return e.Err }

// NewNetworkError cria um erro de rede.
func NewNetworkError(msg string, err error) AppError {
	return &NetworkError{Msg: msg, Err: err}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewStorageError é um atalho para falhas do armazenamento local da sessão.
func NewStorageError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (storage): %s", msg, err.Error()), err)
}

// --- Helpers ---

// StatusOf devolve o status HTTP da API quando err carrega um HTTPError (0 caso contrário).
func StatusOf(err error) int {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "An unexpected error occurred."
}
