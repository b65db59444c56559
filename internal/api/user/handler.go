package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gorecipes/internal/domain"
	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/pkg/middleware"
)

// UserService define o contrato para as operações de sessão e perfil.
type UserService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.SessionRecord, error)
	Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionRecord, error)
	Logout()
	Current() (domain.User, bool)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)
}

// SessionResponse descreve o estado da sessão local. O token nunca é exposto.
type SessionResponse struct {
	LoggedIn bool         `json:"logged_in"`
	User     *domain.User `json:"user,omitempty"`
}

// Handler agrupa todos os métodos de Handler da sessão.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse padroniza o tratamento de erros e respostas HTTP.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			json.NewEncoder(w).Encode(data)
		}
		return
	}

	// Mapeamento de Erros de Negócio para Status HTTP
	status, category, message := apperror.MapToHTTPStatus(err)

	// Log apenas de erros graves
	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro interno no serviço de sessão (request_id=%s):", middleware.RequestIDFromContext(r.Context())), err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

func sessionOf(record domain.SessionRecord) SessionResponse {
	if record.Token == "" {
		return SessionResponse{LoggedIn: false}
	}
	u := record.User
	return SessionResponse{LoggedIn: true, User: &u}
}

// LoginHandler lida com a requisição POST /v1/session/login.
// @Summary Autentica e persiste a sessão local
// @Description Envia email/senha para a API; em caso de sucesso o token e o usuário ficam salvos localmente.
// @Tags session
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 502 {object} domain.ErrorResponse "API indisponível"
// @Router /v1/session/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON payload."), http.StatusOK)
		return
	}

	// 1. Chamar o Serviço (validação + persistência)
	record, err := h.Service.Login(r.Context(), req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	// 2. Resposta de Sucesso (200 OK com o estado da sessão)
	h.handleServiceResponse(w, r, sessionOf(record), nil, http.StatusOK)
}

// RegisterHandler lida com a requisição POST /v1/session/register.
// @Summary Cria uma conta
// @Description Sem token na resposta da API a conta é criada mas a sessão não é aberta.
// @Tags session
// @Accept json
// @Produce json
// @Param registration body domain.RegisterRequest true "Dados de cadastro"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Cadastro rejeitado"
// @Router /v1/session/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON payload."), http.StatusCreated)
		return
	}

	record, err := h.Service.Register(r.Context(), req)
	h.handleServiceResponse(w, r, sessionOf(record), err, http.StatusCreated)
}

// LogoutHandler lida com a requisição DELETE /v1/session.
// @Summary Encerra a sessão local
// @Tags session
// @Success 204
// @Router /v1/session [delete]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// CurrentHandler lida com a requisição GET /v1/session.
// @Summary Estado da sessão local
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /v1/session [get]
func (h *Handler) CurrentHandler(w http.ResponseWriter, r *http.Request) {
	resp := SessionResponse{}
	if u, ok := h.Service.Current(); ok {
		resp = SessionResponse{LoggedIn: true, User: &u}
	}
	h.handleServiceResponse(w, r, resp, nil, http.StatusOK)
}

// UpdateProfileHandler lida com a requisição PUT /v1/session/profile.
// @Summary Atualiza o perfil e o usuário persistido
// @Tags session
// @Accept json
// @Produce json
// @Param profile body domain.ProfileUpdate true "Campos do perfil"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Campo inválido"
// @Failure 401 {object} domain.ErrorResponse "Login necessário"
// @Router /v1/session/profile [put]
func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON payload."), http.StatusOK)
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), update)
	h.handleServiceResponse(w, r, user, err, http.StatusOK)
}
