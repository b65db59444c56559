package page

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"gorecipes/internal/domain"
	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/service/recipeservice"
	"gorecipes/internal/service/userservice"
)

// RecipeService define o contrato que as páginas esperam do serviço de receitas.
type RecipeService interface {
	Resolve(ctx context.Context, id string) (domain.Recipe, bool)
	Home(ctx context.Context, category string, page int) recipeservice.HomeView
	NewestOrEmpty(ctx context.Context) []domain.RecipeCard
	Curated() []domain.RecipeCard
	Search(query string) []domain.RecipeCard
	Related() []domain.RecipeCard
	Categories() []string
	Create(ctx context.Context, form domain.RecipeForm) (domain.APIRecipe, error)
}

// UserService define o contrato de conta usado pelas páginas.
type UserService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.SessionRecord, error)
	Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionRecord, error)
	Logout()
	Current() (domain.User, bool)
	ProfilePage(ctx context.Context) (userservice.ProfileView, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)
}

// Handler agrupa os handlers das páginas HTML.
type Handler struct {
	Recipes RecipeService
	Users   UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando os Serviços e o Logger.
func NewHandler(recipes RecipeService, users UserService, log logger.Logger) *Handler {
	return &Handler{
		Recipes: recipes,
		Users:   users,
		Logger:  log,
	}
}

const minIngredientRows = 3

var difficulties = []string{"Easy", "Medium", "Hard"}

// --- Navegação ---

// HomeHandler lida com GET /.
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	// O padrão "GET /" também casa qualquer caminho sem rota
	if r.URL.Path != "/" {
		h.render(w, r, http.StatusNotFound, "not_found", pageData{})
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	view := h.Recipes.Home(r.Context(), q.Get("category"), page)
	h.render(w, r, http.StatusOK, "home", pageData{Data: view})
}

type recipePage struct {
	Recipe  domain.Recipe
	Related []domain.RecipeCard
}

// RecipeHandler lida com GET /recipe/{id}.
func (h *Handler) RecipeHandler(w http.ResponseWriter, r *http.Request) {
	recipe, ok := h.Recipes.Resolve(r.Context(), r.PathValue("id"))
	if !ok {
		h.render(w, r, http.StatusNotFound, "not_found", pageData{})
		return
	}
	h.render(w, r, http.StatusOK, "recipe", pageData{Data: recipePage{
		Recipe:  recipe,
		Related: h.Recipes.Related(),
	}})
}

type listPage struct {
	Heading string
	Intro   string
	Empty   string
	Cards   []domain.RecipeCard
}

// IndianRecipesHandler lida com GET /indian-recipes.
func (h *Handler) IndianRecipesHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "list", pageData{Data: listPage{
		Heading: "Indian Recipes",
		Intro:   "Explore flavorful Indian dishes",
		Empty:   "No recipes found.",
		Cards:   h.Recipes.Curated(),
	}})
}

// NewRecipesHandler lida com GET /new-recipes.
func (h *Handler) NewRecipesHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "list", pageData{Data: listPage{
		Heading: "Newly Added Recipes",
		Intro:   "Check out the latest culinary creations from our community",
		Empty:   "No new recipes yet.",
		Cards:   h.Recipes.NewestOrEmpty(r.Context()),
	}})
}

// SearchHandler lida com GET /search?q=.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.render(w, r, http.StatusOK, "list", pageData{
			Error: "Please enter a search term",
			Data:  listPage{Heading: "Search Recipes", Empty: "Type something in the search box above."},
		})
		return
	}
	h.render(w, r, http.StatusOK, "list", pageData{Query: query, Data: listPage{
		Heading: "Results for \"" + query + "\"",
		Empty:   "No recipes match your search.",
		Cards:   h.Recipes.Search(query),
	}})
}

// --- Sessão ---

type authPage struct {
	Signup bool
	Name   string
	Email  string
	Next   string
}

// LoginPageHandler lida com GET /login. Usuário já logado volta para a home.
func (h *Handler) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Users.Current(); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", pageData{Data: authPage{Next: r.URL.Query().Get("next")}})
}

// LoginSubmitHandler lida com POST /login.
func (h *Handler) LoginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login", pageData{Error: "Invalid form submission.", Data: authPage{}})
		return
	}
	req := domain.LoginRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	next := r.PostFormValue("next")

	if _, err := h.Users.Login(r.Context(), req); err != nil {
		h.render(w, r, statusFor(err), "login", pageData{
			Error: formError(err, "Invalid email or password"),
			Data:  authPage{Email: req.Email, Next: next},
		})
		return
	}

	h.Logger.Info("Login efetuado.", map[string]interface{}{"email": req.Email})
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// SignupPageHandler lida com GET /signup.
func (h *Handler) SignupPageHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Users.Current(); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", pageData{Data: authPage{Signup: true}})
}

// SignupSubmitHandler lida com POST /signup.
func (h *Handler) SignupSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login", pageData{Error: "Invalid form submission.", Data: authPage{Signup: true}})
		return
	}
	req := domain.RegisterRequest{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	record, err := h.Users.Register(r.Context(), req)
	if err != nil {
		h.render(w, r, statusFor(err), "login", pageData{
			Error: formError(err, "Registration failed"),
			Data:  authPage{Signup: true, Name: req.Name, Email: req.Email},
		})
		return
	}

	// Sem token a API não abriu sessão: o usuário precisa entrar
	if record.Token == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutHandler lida com /logout (GET ou POST).
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.Users.Logout()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// --- Rotas protegidas ---

type profilePage struct {
	View userservice.ProfileView
}

// ProfileHandler lida com GET /profile.
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Users.ProfilePage(r.Context())
	if err != nil {
		h.redirectOnUnauthorized(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "profile", pageData{Data: profilePage{View: view}})
}

// ProfileSubmitHandler lida com POST /profile.
func (h *Handler) ProfileSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "profile", pageData{Error: "Invalid form submission.", Data: profilePage{}})
		return
	}
	update := domain.ProfileUpdate{
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		AvatarURL: strings.TrimSpace(r.PostFormValue("avatar_url")),
		Bio:       r.PostFormValue("bio"),
		Website:   strings.TrimSpace(r.PostFormValue("website")),
	}

	_, err := h.Users.UpdateProfile(r.Context(), update)
	if err != nil {
		var unauthorized *apperror.UnauthorizedError
		if errors.As(err, &unauthorized) {
			h.redirectOnUnauthorized(w, r, err)
			return
		}
	}

	view, loadErr := h.Users.ProfilePage(r.Context())
	if loadErr != nil {
		h.redirectOnUnauthorized(w, r, loadErr)
		return
	}

	data := pageData{Data: profilePage{View: view}}
	status := http.StatusOK
	if err != nil {
		// Mantém o que o usuário digitou
		view.User = domain.User{
			ID:        view.User.ID,
			Name:      update.Name,
			Email:     update.Email,
			AvatarURL: update.AvatarURL,
			Bio:       update.Bio,
			Website:   update.Website,
		}
		data.Data = profilePage{View: view}
		data.Error = formError(err, "Failed to update profile")
		status = statusFor(err)
	} else {
		data.Flash = "Profile updated successfully"
	}
	h.render(w, r, status, "profile", data)
}

type ingredientRow struct {
	ID string
	domain.IngredientInput
}

type addRecipePage struct {
	Form         domain.RecipeForm
	Categories   []string
	Difficulties []string
	Rows         []ingredientRow
}

func (h *Handler) addRecipePage(form domain.RecipeForm) addRecipePage {
	rows := make([]ingredientRow, 0, minIngredientRows)
	for _, in := range form.Ingredients {
		rows = append(rows, ingredientRow{ID: uuid.NewString(), IngredientInput: in})
	}
	for len(rows) < minIngredientRows {
		rows = append(rows, ingredientRow{ID: uuid.NewString()})
	}
	return addRecipePage{
		Form:         form,
		Categories:   h.Recipes.Categories(),
		Difficulties: difficulties,
		Rows:         rows,
	}
}

// AddRecipePageHandler lida com GET /add-recipe.
func (h *Handler) AddRecipePageHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "add_recipe", pageData{Data: h.addRecipePage(domain.RecipeForm{})})
}

// AddRecipeSubmitHandler lida com POST /add-recipe.
func (h *Handler) AddRecipeSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "add_recipe", pageData{
			Error: "Invalid form submission.",
			Data:  h.addRecipePage(domain.RecipeForm{}),
		})
		return
	}
	form := parseRecipeForm(r.PostForm)

	created, err := h.Recipes.Create(r.Context(), form)
	if err != nil {
		var unauthorized *apperror.UnauthorizedError
		if errors.As(err, &unauthorized) {
			h.redirectOnUnauthorized(w, r, err)
			return
		}
		h.render(w, r, statusFor(err), "add_recipe", pageData{
			Error: formError(err, "Failed to create recipe. Please try again."),
			Data:  h.addRecipePage(form),
		})
		return
	}

	http.Redirect(w, r, "/recipe/"+url.PathEscape(created.ID), http.StatusSeeOther)
}

// parseRecipeForm monta o formulário a partir dos campos postados.
// Linhas de ingrediente vêm como listas paralelas (name/amount/unit).
func parseRecipeForm(v url.Values) domain.RecipeForm {
	cookingTime, _ := strconv.Atoi(strings.TrimSpace(v.Get("cooking_time")))
	servings, _ := strconv.Atoi(strings.TrimSpace(v.Get("servings")))

	names := v["ingredient_name"]
	amounts := v["ingredient_amount"]
	units := v["ingredient_unit"]
	ingredients := make([]domain.IngredientInput, 0, len(names))
	for i, name := range names {
		in := domain.IngredientInput{Name: name}
		if i < len(amounts) {
			in.Amount = amounts[i]
		}
		if i < len(units) {
			in.Unit = units[i]
		}
		ingredients = append(ingredients, in)
	}

	return domain.RecipeForm{
		Title:        strings.TrimSpace(v.Get("title")),
		Description:  strings.TrimSpace(v.Get("description")),
		Category:     v.Get("category"),
		CookingTime:  cookingTime,
		Servings:     servings,
		Difficulty:   v.Get("difficulty"),
		Instructions: v.Get("instructions"),
		ImageURL:     strings.TrimSpace(v.Get("image_url")),
		Ingredients:  ingredients,
	}
}

// --- Auxiliares ---

func (h *Handler) redirectOnUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	var unauthorized *apperror.UnauthorizedError
	if errors.As(err, &unauthorized) {
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
		return
	}
	h.Logger.Error("Falha inesperada na página:", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// formError escolhe a mensagem exibida no formulário.
// Erros de validação e da API trazem a própria mensagem; o resto usa o fallback.
func formError(err error, fallback string) string {
	var appErr apperror.AppError
	if errors.As(err, &appErr) && appErr.Error() != "" {
		return appErr.Error()
	}
	return fallback
}

func statusFor(err error) int {
	status, _, _ := apperror.MapToHTTPStatus(err)
	return status
}

// safeNext só aceita caminhos locais para evitar redirecionamento aberto.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
