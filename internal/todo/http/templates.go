package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type formView struct {
	Username string
	Error    string
}

type homeView struct {
	Username string
	Tasks    []domain.Task
	Error    string
}

func render(w http.ResponseWriter, r *http.Request, status int, name string, view any) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := templates.ExecuteTemplate(w, name, view); err != nil {
		slogx.FromContext(r.Context()).Error("render template failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
	}
}
