package recipeservice

import (
	"context"
	"strings"

	"gorecipes/internal/catalog"
	"gorecipes/internal/domain"
)

const highlightSize = 3

// HomeView é tudo o que a página inicial exibe.
type HomeView struct {
	Newest        []domain.RecipeCard
	Categories    []string
	Category      string
	Recipes       []domain.RecipeCard
	Page          int
	TotalPages    int
	Vegetarian    []domain.RecipeCard
	NonVegetarian []domain.RecipeCard
	Desserts      []domain.RecipeCard
}

// HasPrev e HasNext controlam a paginação no template.
func (v HomeView) HasPrev() bool { return v.Page > 1 }
func (v HomeView) HasNext() bool { return v.Page < v.TotalPages }

// Home monta a página inicial. Falha ao buscar as recentes resulta em lista vazia.
func (s *Service) Home(ctx context.Context, category string, page int) HomeView {
	if category == "" {
		category = "all"
	}
	mock := s.catalog.MockRecipes()

	// 1. Filtro por categoria
	filtered := make([]domain.MockRecipe, 0, len(mock))
	for _, r := range mock {
		if category == "all" || r.Category == category {
			filtered = append(filtered, r)
		}
	}

	// 2. Paginação
	totalPages := (len(filtered) + s.pageSize - 1) / s.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return HomeView{
		Newest:     s.NewestOrEmpty(ctx),
		Categories: s.catalog.Categories(),
		Category:   category,
		Recipes:    mockCards(filtered[start:end]),
		Page:       page,
		TotalPages: totalPages,
		Vegetarian: highlight(mock, func(r domain.MockRecipe) bool {
			return DietFor(r.Category) == domain.DietVegetarian
		}),
		NonVegetarian: highlight(mock, func(r domain.MockRecipe) bool {
			return r.Category == "Asian" || strings.Contains(r.Title, "Chicken")
		}),
		Desserts: highlight(mock, func(r domain.MockRecipe) bool {
			return DietFor(r.Category) == domain.DietDessert
		}),
	}
}

// Newest busca as receitas mais recentes da API.
func (s *Service) Newest(ctx context.Context) ([]domain.RecipeCard, error) {
	recipes, err := s.repo.Newest(ctx, s.newestLimit)
	if err != nil {
		return nil, err
	}
	return apiCards(recipes), nil
}

// NewestOrEmpty é Newest com a falha registrada e engolida.
func (s *Service) NewestOrEmpty(ctx context.Context) []domain.RecipeCard {
	cards, err := s.Newest(ctx)
	if err != nil {
		s.log.Warn("Falha ao buscar receitas recentes.", map[string]interface{}{"error": err.Error()})
		return []domain.RecipeCard{}
	}
	return cards
}

// Curated lista o conjunto curado (página de receitas indianas).
func (s *Service) Curated() []domain.RecipeCard {
	recipes := s.catalog.CuratedRecipes()
	cards := make([]domain.RecipeCard, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, catalog.CuratedCard(r))
	}
	return cards
}

// Catalog lista todas as receitas locais: curadas e depois mock.
func (s *Service) Catalog() []domain.RecipeCard {
	return append(s.Curated(), mockCards(s.catalog.MockRecipes())...)
}

// Search procura nas fontes locais.
func (s *Service) Search(query string) []domain.RecipeCard {
	return s.catalog.Search(query)
}

// Related devolve as primeiras receitas da coleção mock, exibidas abaixo do detalhe.
func (s *Service) Related() []domain.RecipeCard {
	mock := s.catalog.MockRecipes()
	if len(mock) > highlightSize {
		mock = mock[:highlightSize]
	}
	return mockCards(mock)
}

// Categories expõe as categorias do catálogo (formulário de criação).
func (s *Service) Categories() []string {
	return s.catalog.SortedCategories()
}

func highlight(recipes []domain.MockRecipe, keep func(domain.MockRecipe) bool) []domain.RecipeCard {
	var out []domain.MockRecipe
	for _, r := range recipes {
		if keep(r) {
			out = append(out, r)
			if len(out) == highlightSize {
				break
			}
		}
	}
	return mockCards(out)
}

func mockCards(recipes []domain.MockRecipe) []domain.RecipeCard {
	cards := make([]domain.RecipeCard, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, catalog.MockCard(r))
	}
	return cards
}
