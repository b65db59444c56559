package recipeservice

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gorecipes/internal/catalog"
	"gorecipes/internal/domain"
)

// apiIDPattern é o formato de id do backend (ObjectId de 24 hex).
var apiIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

const (
	defaultDifficulty  = "Medium"
	defaultCookMinutes = 30
	defaultServings    = 4
	curatedPrepMinutes = 15
	otherPrepMinutes   = 20
)

// IsAPIID informa se id tem o formato aceito pela API.
func IsAPIID(id string) bool {
	return apiIDPattern.MatchString(id)
}

// Resolve devolve a receita normalizada para id, ou false quando nenhuma fonte a conhece.
// "Não encontrada" é um resultado válido, não um erro.
func (s *Service) Resolve(ctx context.Context, id string) (domain.Recipe, bool) {
	v, ok := s.ResolveVariant(ctx, id)
	if !ok {
		return domain.Recipe{}, false
	}
	return Normalize(v), true
}

// ResolveVariant aplica a ordem de prioridade: API (id hex) -> curadas -> mock (id numérico).
func (s *Service) ResolveVariant(ctx context.Context, id string) (domain.Variant, bool) {
	// 1. API, apenas para ids no formato do backend. Qualquer falha cai para as fontes locais.
	if IsAPIID(id) {
		recipe, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return &recipe, true
		}
		s.log.Warn("Falha ao buscar receita na API; usando fontes locais.", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
	}

	// 2. Conjunto curado (chave exata)
	if r, ok := s.catalog.Curated(id); ok {
		return r, true
	}

	// 3. Coleção mock (id numérico inteiro)
	if n, ok := parseMockID(id); ok {
		if r, ok := s.catalog.Mock(n); ok {
			return r, true
		}
	}

	s.log.Debug("Receita não encontrada em nenhuma fonte.", map[string]interface{}{"id": id})
	return nil, false
}

// parseMockID aceita qualquer representação numérica finita e inteira ("3", "3.0", " 3 ").
func parseMockID(id string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(id), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// Normalize converte qualquer variante no modelo de exibição. É pura.
func Normalize(v domain.Variant) domain.Recipe {
	switch r := v.(type) {
	case *domain.APIRecipe:
		return normalizeAPI(r)
	case *domain.CuratedRecipe:
		return normalizeCurated(r)
	case *domain.MockRecipe:
		return normalizeMock(r)
	default:
		panic(fmt.Sprintf("recipeservice: variante desconhecida %T", v))
	}
}

func normalizeAPI(r *domain.APIRecipe) domain.Recipe {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}
	return domain.Recipe{
		ID:                 r.ID,
		Source:             domain.SourceAPI,
		Title:              r.Title,
		Description:        r.Description,
		ImageURL:           r.ImageURL,
		Category:           r.Category,
		CookingTimeMinutes: r.CookingTime,
		PrepTimeMinutes:    otherPrepMinutes,
		Servings:           r.Servings,
		Difficulty:         difficulty,
		Ingredients:        append([]domain.Ingredient(nil), r.Ingredients...),
		InstructionSteps:   splitSteps(r.Instructions),
		Diet:               DietFor(r.Category),
		Author:             r.User,
	}
}

func normalizeCurated(r *domain.CuratedRecipe) domain.Recipe {
	return domain.Recipe{
		ID:                 r.ID,
		Source:             domain.SourceCurated,
		Title:              r.Title,
		Description:        r.Description,
		ImageURL:           catalog.ImageFor(r.Category, r.ImageURL),
		Category:           r.Category,
		CookingTimeMinutes: r.CookingTime,
		PrepTimeMinutes:    curatedPrepMinutes,
		Servings:           orDefault(r.Servings, defaultServings),
		Difficulty:         defaultDifficulty,
		Ingredients:        append([]domain.Ingredient(nil), r.Ingredients...),
		InstructionSteps:   splitSteps(r.Instructions),
		Diet:               DietFor(r.Category),
	}
}

func normalizeMock(r *domain.MockRecipe) domain.Recipe {
	names := catalog.MockIngredients(r)
	ingredients := make([]domain.Ingredient, len(names))
	for i, name := range names {
		ingredients[i] = domain.Ingredient{Name: name}
	}

	steps := make([]string, len(r.Instructions))
	for i, phrase := range r.Instructions {
		steps[i] = fmt.Sprintf("%d. %s", i+1, phrase)
	}

	return domain.Recipe{
		ID:                 r.RecipeID(),
		Source:             domain.SourceMock,
		Title:              r.Title,
		Description:        r.Description,
		ImageURL:           catalog.ImageFor(r.Category, r.Image),
		Category:           r.Category,
		CookingTimeMinutes: parseMinutes(r.Time),
		PrepTimeMinutes:    otherPrepMinutes,
		Servings:           orDefault(r.Servings, defaultServings),
		Difficulty:         defaultDifficulty,
		Ingredients:        ingredients,
		InstructionSteps:   steps,
		Diet:               DietFor(r.Category),
	}
}

// splitSteps quebra em "\n" e remove apenas o "\r" final de cada linha.
// Linhas em branco viram passos vazios.
func splitSteps(instructions string) []string {
	lines := strings.Split(instructions, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parseMinutes lê o inteiro inicial de "25 min". Sem dígitos iniciais => 30.
func parseMinutes(t string) int {
	t = strings.TrimSpace(t)
	end := 0
	for end < len(t) && t[end] >= '0' && t[end] <= '9' {
		end++
	}
	if end == 0 {
		return defaultCookMinutes
	}
	n, err := strconv.Atoi(t[:end])
	if err != nil {
		return defaultCookMinutes
	}
	return n
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// DietFor rotula a dieta a partir da categoria.
func DietFor(category string) domain.DietType {
	switch category {
	case "Indian", "Salads", "Italian", "Vegetarian":
		return domain.DietVegetarian
	case "Desserts", "Baking":
		return domain.DietDessert
	default:
		return domain.DietNonVegetarian
	}
}
