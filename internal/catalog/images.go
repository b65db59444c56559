package catalog

// DefaultImageURL é usada quando não há imagem nem fallback de categoria.
const DefaultImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c"

var categoryImages = map[string]string{
	"Indian":     "https://images.unsplash.com/photo-1585937421612-70a008356fbe",
	"Italian":    "https://images.unsplash.com/photo-1551183053-bf91a1d81141",
	"Desserts":   "https://images.unsplash.com/photo-1578985545062-69928b1d9587",
	"Asian":      "https://images.unsplash.com/photo-1512058564366-18510be2db19",
	"Salads":     "https://images.unsplash.com/photo-1550304943-4f24f54ddde9",
	"Baking":     "https://images.unsplash.com/photo-1607958996333-41aef7caefaa",
	"Mexican":    "https://images.unsplash.com/photo-1565299585323-38d6b0865b47",
	"Vegetarian": "https://images.unsplash.com/photo-1512621776951-a57141f2eefd",
}

// ImageFor devolve a imagem da receita, ou a imagem da categoria, ou a padrão.
func ImageFor(category, image string) string {
	if image != "" {
		return image
	}
	if img, ok := categoryImages[category]; ok {
		return img
	}
	return DefaultImageURL
}
