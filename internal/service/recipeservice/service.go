package recipeservice

import (
	"context"
	"strings"

	"gorecipes/internal/catalog"
	"gorecipes/internal/domain"
	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/pkg/validation"
)

// RecipeRepository define o contrato (interface) que este Serviço espera da camada de acesso à API.
type RecipeRepository interface {
	FindByID(ctx context.Context, id string) (domain.APIRecipe, error)
	Newest(ctx context.Context, limit int) ([]domain.APIRecipe, error)
	ByUser(ctx context.Context) ([]domain.APIRecipe, error)
	Create(ctx context.Context, recipe domain.NewRecipe) (domain.APIRecipe, error)
}

// SessionChecker responde se há sessão ativa.
type SessionChecker interface {
	IsLoggedIn() bool
}

// Service agrupa o resolvedor de receitas e as visões de listagem.
type Service struct {
	repo        RecipeRepository
	catalog     *catalog.Catalog
	session     SessionChecker
	log         logger.Logger
	pageSize    int
	newestLimit int
}

// NewService cria e retorna uma nova instância do Serviço de Receitas.
func NewService(repo RecipeRepository, cat *catalog.Catalog, sess SessionChecker, log logger.Logger, pageSize, newestLimit int) *Service {
	if pageSize <= 0 {
		pageSize = 6
	}
	if newestLimit <= 0 {
		newestLimit = 3
	}
	return &Service{
		repo:        repo,
		catalog:     cat,
		session:     sess,
		log:         log,
		pageSize:    pageSize,
		newestLimit: newestLimit,
	}
}

// --- Criação ---

// Create valida o formulário e publica a receita na API.
func (s *Service) Create(ctx context.Context, form domain.RecipeForm) (domain.APIRecipe, error) {
	// 1. Sessão obrigatória
	if !s.session.IsLoggedIn() {
		return domain.APIRecipe{}, apperror.NewUnauthorizedError("You must be logged in to add a recipe")
	}

	// 2. Validação de campos
	if err := validation.Struct(form); err != nil {
		return domain.APIRecipe{}, err
	}

	// 3. Ingredientes: descarta linhas sem nome ou quantidade; unidade vazia vira null
	ingredients := make([]domain.Ingredient, 0, len(form.Ingredients))
	for _, in := range form.Ingredients {
		name, amount := strings.TrimSpace(in.Name), strings.TrimSpace(in.Amount)
		if name == "" || amount == "" {
			continue
		}
		var unit *string
		if u := strings.TrimSpace(in.Unit); u != "" {
			unit = &u
		}
		ingredients = append(ingredients, domain.Ingredient{Name: name, Amount: amount, Unit: unit})
	}
	if len(ingredients) == 0 {
		return domain.APIRecipe{}, apperror.NewFieldError("ingredients", "Please add at least one ingredient")
	}

	imageURL := form.ImageURL
	if imageURL == "" {
		imageURL = catalog.DefaultImageURL
	}

	// 4. Delegação para o Repositório
	created, err := s.repo.Create(ctx, domain.NewRecipe{
		Title:        form.Title,
		Description:  form.Description,
		Category:     form.Category,
		CookingTime:  form.CookingTime,
		Servings:     form.Servings,
		Difficulty:   form.Difficulty,
		Instructions: form.Instructions,
		ImageURL:     imageURL,
		Ingredients:  ingredients,
	})
	if err != nil {
		// Propaga o erro da API (HTTPError/NetworkError) sem tradução
		return domain.APIRecipe{}, err
	}

	s.log.Info("Receita publicada.", map[string]interface{}{"id": created.ID, "title": created.Title})
	return created, nil
}

// UserRecipes lista as receitas do usuário logado.
func (s *Service) UserRecipes(ctx context.Context) ([]domain.RecipeCard, error) {
	recipes, err := s.repo.ByUser(ctx)
	if err != nil {
		return nil, err
	}
	return apiCards(recipes), nil
}

func apiCards(recipes []domain.APIRecipe) []domain.RecipeCard {
	cards := make([]domain.RecipeCard, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, catalog.APICard(r))
	}
	return cards
}
