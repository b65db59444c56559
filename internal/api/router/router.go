package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gorecipes/docs" // Registra a especificação Swagger gerada

	"gorecipes/internal/api/page"
	"gorecipes/internal/api/recipe"
	"gorecipes/internal/api/user"
	"gorecipes/internal/pkg/cache"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/pkg/middleware"
)

// RateLimit configura o limitador; desligado quando Cache é nil.
type RateLimit struct {
	Cache       cache.Client
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	pages *page.Handler,
	recipeHandler *recipe.Handler,
	userHandler *user.Handler,
	sess middleware.SessionChecker,
	limit RateLimit,
	log logger.Logger,
) http.Handler {
	mux := http.NewServeMux()
	protected := middleware.RequireLogin(sess)

	// --- 1. Rotas de Health Check e Documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// --- 2. Páginas HTML ---
	mux.HandleFunc("GET /", pages.HomeHandler)
	mux.HandleFunc("GET /recipe/{id}", pages.RecipeHandler)
	mux.HandleFunc("GET /indian-recipes", pages.IndianRecipesHandler)
	mux.HandleFunc("GET /new-recipes", pages.NewRecipesHandler)
	mux.HandleFunc("GET /search", pages.SearchHandler)
	mux.HandleFunc("GET /login", pages.LoginPageHandler)
	mux.HandleFunc("POST /login", pages.LoginSubmitHandler)
	mux.HandleFunc("GET /signup", pages.SignupPageHandler)
	mux.HandleFunc("POST /signup", pages.SignupSubmitHandler)
	mux.HandleFunc("GET /logout", pages.LogoutHandler)
	mux.HandleFunc("POST /logout", pages.LogoutHandler)
	mux.HandleFunc("GET /profile", protected(pages.ProfileHandler))
	mux.HandleFunc("POST /profile", protected(pages.ProfileSubmitHandler))
	mux.HandleFunc("GET /add-recipe", protected(pages.AddRecipePageHandler))
	mux.HandleFunc("POST /add-recipe", protected(pages.AddRecipeSubmitHandler))

	// --- 3. API JSON (v1) ---
	// "newest" é literal e vence o curinga {id}
	mux.HandleFunc("GET /v1/recipes/newest", recipeHandler.NewestRecipesHandler)
	mux.HandleFunc("GET /v1/recipes/{id}", recipeHandler.GetRecipeHandler)
	mux.HandleFunc("POST /v1/recipes", protected(recipeHandler.CreateRecipeHandler))

	mux.HandleFunc("POST /v1/session/login", userHandler.LoginHandler)
	mux.HandleFunc("POST /v1/session/register", userHandler.RegisterHandler)
	mux.HandleFunc("GET /v1/session", userHandler.CurrentHandler)
	mux.HandleFunc("DELETE /v1/session", userHandler.LogoutHandler)
	mux.HandleFunc("PUT /v1/session/profile", protected(userHandler.UpdateProfileHandler))

	// --- 4. Middlewares Globais ---
	var handler http.Handler = mux
	if limit.Cache != nil {
		handler = middleware.RateLimiter(limit.Cache, limit.MaxRequests, limit.Period, log)(handler)
	}
	return middleware.RequestLogger(log)(handler)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
