package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"stressjournal/internal/view"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.model.SetPage(view.PageHome)
	s.renderPage(w)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.model.SetPage(view.PageAbout)
	s.renderPage(w)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	s.model.SetText(r.PostFormValue("text"))
	s.model.Submit(r.Context())

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "backend": "ok"}
	if err := s.checker.Health(ctx); err != nil {
		slog.Warn("backend unreachable", "error", err)
		status["backend"] = "unreachable"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) renderPage(w http.ResponseWriter) {
	state := s.model.Snapshot()
	if err := s.tmpl.ExecuteTemplate(w, "index.html", state); err != nil {
		slog.Error("template render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
