package recipe

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

// RecipeService define o contrato que o Handler espera da camada de Serviço.
type RecipeService interface {
	Resolve(ctx context.Context, id string) (domain.Recipe, bool)
	Newest(ctx context.Context) ([]domain.RecipeCard, error)
	Create(ctx context.Context, form domain.RecipeForm) (domain.APIRecipe, error)
}

// Handler agrupa todos os métodos de Handler de receitas.
type Handler struct {
	Service RecipeService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc RecipeService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	requestID := middleware.RequestIDFromContext(r.Context())

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s (request_id=%s)", category, requestID), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path":       r.URL.Path,
			"request_id": requestID,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// GetRecipeHandler lida com a requisição GET /v1/recipes/{id}.
// @Summary Busca uma receita normalizada
// @Description Resolve o id na API (ids hex de 24 caracteres), no conjunto curado ou na coleção mock.
// @Tags recipes
// @Produce json
// @Param id path string true "ID da receita"
// @Success 200 {object} domain.Recipe
// @Failure 404 {object} domain.ErrorResponse "Receita não encontrada em nenhuma fonte"
// @Router /v1/recipes/{id} [get]
func (h *Handler) GetRecipeHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Recipe id is required."), http.StatusOK)
		return
	}

	recipe, ok := h.Service.Resolve(r.Context(), id)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError("Recipe not found"), http.StatusOK)
		return
	}
	h.handleServiceResponse(w, r, recipe, nil, http.StatusOK)
}

// NewestRecipesHandler lida com a requisição GET /v1/recipes/newest.
// @Summary Lista as receitas mais recentes
// @Tags recipes
// @Produce json
// @Success 200 {array} domain.RecipeCard
// @Failure 502 {object} domain.ErrorResponse "API de receitas indisponível"
// @Router /v1/recipes/newest [get]
func (h *Handler) NewestRecipesHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Service.Newest(r.Context())
	h.handleServiceResponse(w, r, cards, err, http.StatusOK)
}

// CreateRecipeHandler lida com a requisição POST /v1/recipes.
// @Summary Publica uma nova receita
// @Description Valida o formulário, descarta ingredientes incompletos e envia para a API.
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body domain.RecipeForm true "Dados da receita"
// @Success 201 {object} domain.APIRecipe
// @Failure 400 {object} domain.ErrorResponse "Campo inválido"
// @Failure 401 {object} domain.ErrorResponse "Login necessário"
// @Router /v1/recipes [post]
func (h *Handler) CreateRecipeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Info("Tentativa de criação de receita por", map[string]interface{}{
			"user_id": claims.UserID,
		})
	}

	var form domain.RecipeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON payload."), http.StatusCreated)
		return
	}

	created, err := h.Service.Create(ctx, form)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}
