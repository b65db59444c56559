package catalog

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"gorecipes/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog guarda os conjuntos locais: receitas curadas (chave textual) e a coleção mock (id numérico).
// É somente leitura depois de carregado.
type Catalog struct {
	curated     []domain.CuratedRecipe
	curatedByID map[string]*domain.CuratedRecipe
	mock        []domain.MockRecipe
	mockByID    map[int]*domain.MockRecipe
}

// Load lê os conjuntos embutidos no binário.
func Load() (*Catalog, error) {
	curatedRaw, err := dataFS.ReadFile("data/curated.yaml")
	if err != nil {
		return nil, fmt.Errorf("falha ao ler conjunto curado: %w", err)
	}
	mockRaw, err := dataFS.ReadFile("data/mock.yaml")
	if err != nil {
		return nil, fmt.Errorf("falha ao ler coleção mock: %w", err)
	}
	return Parse(curatedRaw, mockRaw)
}

// MustLoad é Load para inicialização de testes e do main.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse monta o catálogo a partir de documentos YAML.
func Parse(curatedYAML, mockYAML []byte) (*Catalog, error) {
	var curated []domain.CuratedRecipe
	if err := yaml.Unmarshal(curatedYAML, &curated); err != nil {
		return nil, fmt.Errorf("conjunto curado inválido: %w", err)
	}
	var mock []domain.MockRecipe
	if err := yaml.Unmarshal(mockYAML, &mock); err != nil {
		return nil, fmt.Errorf("coleção mock inválida: %w", err)
	}
	return New(curated, mock)
}

// New monta o catálogo e rejeita ids duplicados.
func New(curated []domain.CuratedRecipe, mock []domain.MockRecipe) (*Catalog, error) {
	c := &Catalog{
		curated:     curated,
		curatedByID: make(map[string]*domain.CuratedRecipe, len(curated)),
		mock:        mock,
		mockByID:    make(map[int]*domain.MockRecipe, len(mock)),
	}
	for i := range c.curated {
		r := &c.curated[i]
		if _, dup := c.curatedByID[r.ID]; dup {
			return nil, fmt.Errorf("id curado duplicado: %q", r.ID)
		}
		c.curatedByID[r.ID] = r
	}
	for i := range c.mock {
		r := &c.mock[i]
		if _, dup := c.mockByID[r.ID]; dup {
			return nil, fmt.Errorf("id mock duplicado: %d", r.ID)
		}
		c.mockByID[r.ID] = r
	}
	return c, nil
}

// Curated busca pela chave exata (sensível a maiúsculas).
func (c *Catalog) Curated(id string) (*domain.CuratedRecipe, bool) {
	r, ok := c.curatedByID[id]
	return r, ok
}

// Mock busca pelo id numérico.
func (c *Catalog) Mock(id int) (*domain.MockRecipe, bool) {
	r, ok := c.mockByID[id]
	return r, ok
}

// CuratedRecipes devolve o conjunto curado na ordem original.
func (c *Catalog) CuratedRecipes() []domain.CuratedRecipe {
	return append([]domain.CuratedRecipe(nil), c.curated...)
}

// MockRecipes devolve a coleção mock na ordem original.
func (c *Catalog) MockRecipes() []domain.MockRecipe {
	return append([]domain.MockRecipe(nil), c.mock...)
}

// Categories devolve "all" seguido das categorias distintas da coleção mock, na ordem em que aparecem.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{"all"}
	for _, r := range c.mock {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

// Search procura em título, descrição e categoria (sem diferenciar maiúsculas).
// Curadas vêm primeiro; consulta vazia não retorna nada.
func (c *Catalog) Search(query string) []domain.RecipeCard {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	match := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	var out []domain.RecipeCard
	for _, r := range c.curated {
		if match(r.Title, r.Description, r.Category) {
			out = append(out, CuratedCard(r))
		}
	}
	for _, r := range c.mock {
		if match(r.Title, r.Description, r.Category) {
			out = append(out, MockCard(r))
		}
	}
	return out
}

// CuratedCard resume uma receita curada para listagens.
func CuratedCard(r domain.CuratedRecipe) domain.RecipeCard {
	return domain.RecipeCard{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    ImageFor(r.Category, r.ImageURL),
		Category:    r.Category,
		Time:        fmt.Sprintf("%d min", r.CookingTime),
		Servings:    r.Servings,
	}
}

// MockCard resume uma receita mock para listagens.
func MockCard(r domain.MockRecipe) domain.RecipeCard {
	return domain.RecipeCard{
		ID:          r.RecipeID(),
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    ImageFor(r.Category, r.Image),
		Category:    r.Category,
		Time:        r.Time,
		Servings:    r.Servings,
	}
}

// APICard resume uma receita da API para listagens.
func APICard(r domain.APIRecipe) domain.RecipeCard {
	return domain.RecipeCard{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Time:        fmt.Sprintf("%d min", r.CookingTime),
		Servings:    r.Servings,
	}
}

// SortedCategories é Categories sem "all", em ordem alfabética (usado no formulário de criação).
func (c *Catalog) SortedCategories() []string {
	cats := c.Categories()[1:]
	sort.Strings(cats)
	return cats
}
