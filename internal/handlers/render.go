package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/bloglet/internal/middleware"
)

//go:embed templates
var templatesFS embed.FS

// pageData merges the resolved session user into template data so the layout
// can render the right nav on every page.
func pageData(r *http.Request, data map[string]interface{}) map[string]interface{} {
	if data == nil {
		data = map[string]interface{}{}
	}
	if user, ok := middleware.UserFrom(r.Context()); ok {
		data["User"] = user
	}
	return data
}

// linebreaks turns blank-line-separated text into paragraphs, escaping the
// input first so post bodies cannot inject markup.
func linebreaks(s string) template.HTML {
	s = template.HTMLEscapeString(s)

	paragraphs := strings.Split(s, "\n\n")
	var result []string

	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			p = strings.ReplaceAll(p, "\n", "<br>")
			result = append(result, "<p>"+p+"</p>")
		}
	}

	return template.HTML(strings.Join(result, "\n"))
}

func renderTemplate(w http.ResponseWriter, name string, data map[string]interface{}) {
	funcs := template.FuncMap{"linebreaks": linebreaks}

	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	layout, _ := templatesFS.ReadFile("templates/layout.html")

	t := template.Must(template.New("layout").Funcs(funcs).Parse(string(layout)))
	t = template.Must(t.Parse(string(content)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template execute", "template", name, "error", err)
	}
}
