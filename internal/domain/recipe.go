package domain

import (
	"strconv"
	"strings"
	"time"
)

// Source identifica de onde veio uma receita resolvida.
type Source string

const (
	SourceAPI     Source = "api"     // Backend externo (id hex de 24 caracteres)
	SourceCurated Source = "curated" // Conjunto curado embutido (receitas indianas)
	SourceMock    Source = "mock"    // Coleção genérica de demonstração (id numérico)
)

// Ingredient é o formato estruturado usado pela API e pelo conjunto curado.
// Unit nulo é preservado (a API envia `"unit": null`).
type Ingredient struct {
	Name   string  `json:"name" yaml:"name"`
	Amount string  `json:"amount" yaml:"amount"`
	Unit   *string `json:"unit" yaml:"unit"`
}

// String monta a linha exibida: "{amount} {unit} {name}" sem espaços sobrando.
func (i Ingredient) String() string {
	parts := make([]string, 0, 3)
	if i.Amount != "" {
		parts = append(parts, i.Amount)
	}
	if i.Unit != nil && *i.Unit != "" {
		parts = append(parts, *i.Unit)
	}
	if i.Name != "" {
		parts = append(parts, i.Name)
	}
	return strings.Join(parts, " ")
}

// Author é o resumo do usuário que publicou a receita na API.
type Author struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// --- Variantes brutas (união fechada) ---

// Variant é implementada apenas pelos três formatos brutos de receita.
type Variant interface {
	Source() Source
	RecipeID() string
	sealed()
}

// APIRecipe é o documento retornado por GET /recipes/:id.
type APIRecipe struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	ImageURL     string       `json:"image_url"`
	CookingTime  int          `json:"cooking_time"`
	Difficulty   string       `json:"difficulty"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"` // Passos separados por "\n"
	User         *Author      `json:"user,omitempty"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
	Likes        []string     `json:"likes,omitempty"`
}

func (r *APIRecipe) Source() Source   { return SourceAPI }
func (r *APIRecipe) RecipeID() string { return r.ID }
func (r *APIRecipe) sealed()          {}

// CuratedRecipe é uma entrada do conjunto curado (chave textual, ex: "butter-chicken").
type CuratedRecipe struct {
	ID           string       `yaml:"id" json:"id"`
	Title        string       `yaml:"title" json:"title"`
	Description  string       `yaml:"description" json:"description"`
	ImageURL     string       `yaml:"image_url" json:"image_url"`
	CookingTime  int          `yaml:"cooking_time" json:"cooking_time"`
	Category     string       `yaml:"category" json:"category"`
	Instructions string       `yaml:"instructions" json:"instructions"`
	Ingredients  []Ingredient `yaml:"ingredients" json:"ingredients"`
	Servings     int          `yaml:"servings,omitempty" json:"servings,omitempty"`
}

func (r *CuratedRecipe) Source() Source   { return SourceCurated }
func (r *CuratedRecipe) RecipeID() string { return r.ID }
func (r *CuratedRecipe) sealed()          {}

// MockRecipe é uma entrada da coleção de demonstração (id numérico).
// Ingredients e Instructions são opcionais.
type MockRecipe struct {
	ID           int      `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Image        string   `yaml:"image" json:"image"`
	Time         string   `yaml:"time" json:"time"` // Ex: "25 min"
	Servings     int      `yaml:"servings" json:"servings"`
	Category     string   `yaml:"category" json:"category"`
	Ingredients  []string `yaml:"ingredients,omitempty" json:"ingredients,omitempty"`
	Instructions []string `yaml:"instructions,omitempty" json:"instructions,omitempty"`
}

func (r *MockRecipe) Source() Source { return SourceMock }
func (r *MockRecipe) RecipeID() string {
	return strconv.Itoa(r.ID)
}
func (r *MockRecipe) sealed() {}

// --- Modelo normalizado ---

// DietType é o rótulo de dieta derivado da categoria.
type DietType string

const (
	DietVegetarian    DietType = "Vegetarian"
	DietDessert       DietType = "Dessert"
	DietNonVegetarian DietType = "Non-Vegetarian"
)

// Recipe é o modelo de exibição único, independente da origem.
// Exatamente uma fonte é autoritativa; os campos nunca são mesclados.
type Recipe struct {
	ID                 string       `json:"id"`
	Source             Source       `json:"source"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	ImageURL           string       `json:"image_url"`
	Category           string       `json:"category"`
	CookingTimeMinutes int          `json:"cooking_time"`
	PrepTimeMinutes    int          `json:"prep_time"`
	Servings           int          `json:"servings"`
	Difficulty         string       `json:"difficulty"`
	Ingredients        []Ingredient `json:"ingredients"`
	InstructionSteps   []string     `json:"instructions"`
	Diet               DietType     `json:"diet"`
	Author             *Author      `json:"author,omitempty"`
}

// RecipeCard é o resumo usado nas listagens (home, busca, recentes).
type RecipeCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Time        string `json:"time"`
	Servings    int    `json:"servings"`
}

// --- Criação de receita ---

// IngredientInput é uma linha do formulário de ingredientes.
type IngredientInput struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// RecipeForm é o payload de entrada para criar uma receita.
type RecipeForm struct {
	Title        string            `json:"title" validate:"min=3"`
	Description  string            `json:"description" validate:"min=10"`
	Category     string            `json:"category" validate:"required"`
	CookingTime  int               `json:"cooking_time" validate:"min=1"`
	Servings     int               `json:"servings" validate:"min=1"`
	Difficulty   string            `json:"difficulty" validate:"required"`
	Instructions string            `json:"instructions" validate:"min=20"`
	ImageURL     string            `json:"image_url" validate:"omitempty,url"`
	Ingredients  []IngredientInput `json:"ingredients"`
}

// NewRecipe é o corpo enviado para POST /recipes.
type NewRecipe struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	CookingTime  int          `json:"cooking_time"`
	Servings     int          `json:"servings"`
	Difficulty   string       `json:"difficulty"`
	Instructions string       `json:"instructions"`
	ImageURL     string       `json:"image_url"`
	Ingredients  []Ingredient `json:"ingredients"`
}
