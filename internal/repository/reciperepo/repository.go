package reciperepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"gorecipes/internal/domain"
	"gorecipes/internal/pkg/cache"
	"gorecipes/internal/pkg/logger"
)

// API é o subconjunto do cliente HTTP usado pelo repositório.
type API interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

// RecipeRepository lê e grava receitas na API externa.
// Cache é opcional (nil desliga o cache-aside).
type RecipeRepository struct {
	API      API
	Cache    cache.Client
	CacheTTL time.Duration
	Logger   logger.Logger
}

// NewRecipeRepository cria o repositório. cacheClient pode ser nil.
func NewRecipeRepository(api API, cacheClient cache.Client, ttl time.Duration, log logger.Logger) *RecipeRepository {
	return &RecipeRepository{
		API:      api,
		Cache:    cacheClient,
		CacheTTL: ttl,
		Logger:   log,
	}
}

// Define a chave de cache para receitas da API.
const recipeCacheKey = "recipe:%s"

// FindByID busca GET /recipes/:id, utilizando a estratégia Cache-Aside.
// Erros da API (404, rede) são devolvidos sem tradução; quem decide o fallback é o serviço.
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (domain.APIRecipe, error) {
	key := fmt.Sprintf(recipeCacheKey, id)
	var recipe domain.APIRecipe

	// 1. Cache-Aside (READ)
	if r.Cache != nil {
		cachedData, err := r.Cache.Get(ctx, key)
		if err == nil {
			if json.Unmarshal([]byte(cachedData), &recipe) == nil {
				r.Logger.Debug("Receita servida do cache.", map[string]interface{}{"id": id})
				return recipe, nil
			}
			r.Logger.Warn("Entrada de cache ilegível; consultando a API.", map[string]interface{}{"id": id})
			recipe = domain.APIRecipe{}
			if err := r.Cache.Delete(ctx, key); err != nil {
				r.Logger.Warn("Falha ao remover entrada do cache Redis.", map[string]interface{}{"error": err.Error()})
			}
		} else if err != cache.ErrCacheMiss {
			// Falha real do Redis não impede a leitura na API.
			r.Logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"error": err.Error()})
		}
	}

	// 2. Busca na API
	if err := r.API.Get(ctx, "/recipes/"+url.PathEscape(id), &recipe); err != nil {
		return domain.APIRecipe{}, err
	}

	// 3. Cache-Aside (WRITE)
	if r.Cache != nil {
		if payload, err := json.Marshal(recipe); err == nil {
			if err := r.Cache.Set(ctx, key, payload, r.CacheTTL); err != nil {
				r.Logger.Warn("Falha ao gravar no cache Redis.", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return recipe, nil
}

// Newest busca GET /recipes/newest?limit=N.
func (r *RecipeRepository) Newest(ctx context.Context, limit int) ([]domain.APIRecipe, error) {
	var recipes []domain.APIRecipe
	if err := r.API.Get(ctx, "/recipes/newest?limit="+strconv.Itoa(limit), &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// ByUser busca GET /recipes/user (receitas do usuário do token).
func (r *RecipeRepository) ByUser(ctx context.Context) ([]domain.APIRecipe, error) {
	var recipes []domain.APIRecipe
	if err := r.API.Get(ctx, "/recipes/user", &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Create envia POST /recipes e devolve o documento criado (com _id).
func (r *RecipeRepository) Create(ctx context.Context, recipe domain.NewRecipe) (domain.APIRecipe, error) {
	var created domain.APIRecipe
	if err := r.API.Post(ctx, "/recipes", recipe, &created); err != nil {
		return domain.APIRecipe{}, err
	}
	return created, nil
}
