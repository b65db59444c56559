package page

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"gorecipes/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
}

// pages mapeia o nome da página para o template já combinado com o layout.
var pages = mustParsePages(
	"home", "recipe", "not_found", "list", "login", "profile", "add_recipe",
)

func mustParsePages(names ...string) map[string]*template.Template {
	base := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html"))
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(base.Clone())
		out[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
	return out
}

// pageData é o envelope comum a todas as páginas (navbar, mensagens).
type pageData struct {
	LoggedIn bool
	User     domain.User
	Query    string
	Flash    string
	Error    string
	Data     interface{}
}

// render executa o template em memória antes de escrever, para que falhas
// de template virem 500 sem uma página parcial.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	data.User, data.LoggedIn = h.Users.Current()
	if data.Query == "" {
		data.Query = r.URL.Query().Get("q")
	}

	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.Logger.Error("Falha ao renderizar página "+name+":", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
