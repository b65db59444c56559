package catalog

import "gorecipes/internal/domain"

// defaultIngredients é usado quando uma receita mock não traz ingredientes.
var defaultIngredients = map[string][]string{
	"Italian Pasta": {
		"400g spaghetti or favorite pasta",
		"2 tbsp olive oil",
		"4 cloves garlic, minced",
		"1 can (400g) crushed tomatoes",
		"1 tsp dried oregano",
		"1 tsp dried basil",
		"Salt and pepper to taste",
		"Grated Parmesan cheese for serving",
		"Fresh basil leaves for garnish",
	},
	"Chocolate Cake": {
		"2 cups all-purpose flour",
		"2 cups sugar",
		"3/4 cup unsweetened cocoa powder",
		"2 tsp baking soda",
		"1 tsp baking powder",
		"1 tsp salt",
		"2 eggs",
		"1 cup buttermilk",
		"1/2 cup vegetable oil",
		"2 tsp vanilla extract",
		"1 cup hot coffee",
	},
	"Chicken Curry": {
		"500g chicken thighs, cut into pieces",
		"2 onions, finely chopped",
		"3 cloves garlic, minced",
		"1 tbsp ginger, grated",
		"2 tbsp curry powder",
		"1 can (400ml) coconut milk",
		"1 tbsp vegetable oil",
		"Salt to taste",
		"Fresh cilantro for garnish",
		"1 tomato, chopped",
	},
	"Vegetable Stir Fry": {
		"2 cups mixed vegetables (bell peppers, broccoli, carrots, snap peas)",
		"2 tbsp sesame oil",
		"2 cloves garlic, minced",
		"1 tbsp ginger, grated",
		"3 tbsp soy sauce",
		"1 tbsp honey or maple syrup",
		"1 tsp cornstarch mixed with 2 tbsp water",
		"Sesame seeds for garnish",
		"Green onions, sliced",
	},
	"Caesar Salad": {
		"1 large romaine lettuce, chopped",
		"1/2 cup croutons",
		"1/4 cup grated Parmesan cheese",
		"2 tbsp olive oil",
		"1 tbsp lemon juice",
		"1 tsp Dijon mustard",
		"1 clove garlic, minced",
		"1 anchovy fillet, minced (optional)",
		"Salt and pepper to taste",
	},
}

// categoryDefaults mapeia categoria -> lista padrão. Qualquer outra categoria cai em "Chicken Curry".
var categoryDefaults = map[string]string{
	"Italian":  "Italian Pasta",
	"Desserts": "Chocolate Cake",
	"Salads":   "Caesar Salad",
	"Asian":    "Vegetable Stir Fry",
}

// DefaultIngredients escolhe a lista por título exato; senão pela categoria.
// A lista devolvida é uma cópia.
func DefaultIngredients(title, category string) []string {
	if list, ok := defaultIngredients[title]; ok {
		return append([]string(nil), list...)
	}
	key, ok := categoryDefaults[category]
	if !ok {
		key = "Chicken Curry"
	}
	return append([]string(nil), defaultIngredients[key]...)
}

// MockIngredients devolve os ingredientes da própria receita ou a lista padrão.
func MockIngredients(r *domain.MockRecipe) []string {
	if len(r.Ingredients) > 0 {
		return append([]string(nil), r.Ingredients...)
	}
	return DefaultIngredients(r.Title, r.Category)
}
