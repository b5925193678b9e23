package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/liveconfig"
	"github.com/appcanvas-dev/appcanvas/internal/page"
)

// builderResponse is the envelope for every /api/templates reply.
type builderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// templateSummary is one entry in the list-templates reply.
type templateSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Instances int    `json:"instances"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConfig serves the live configuration payload. The response is
// uncacheable and readable cross-origin because the consumer is the
// preview runtime on another host.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	appKey := chi.URLParam(r, "appKey")

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	payload, err := s.assembler.Assemble(r.Context(), appKey)
	if err != nil {
		s.log.WithError(err).WithField("app", appKey).Error("config assembly failed")
		writeJSON(w, http.StatusInternalServerError, liveconfig.Payload{
			HasApp: false,
			Error:  "configuration unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

// handleTemplates dispatches the form-encoded builder surface on its
// intent field.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBuilderError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	switch intent := r.PostFormValue("intent"); intent {
	case "save-template":
		s.saveTemplate(w, r)
	case "load-template":
		s.loadTemplate(w, r)
	case "list-templates":
		s.listTemplates(w, r)
	default:
		writeBuilderError(w, http.StatusBadRequest, "unknown intent "+intent)
	}
}

func (s *Server) saveTemplate(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("templateName")
	if name == "" {
		writeBuilderError(w, http.StatusBadRequest, "templateName is required")
		return
	}
	appKey := r.PostFormValue("appKey")
	if appKey == "" {
		writeBuilderError(w, http.StatusBadRequest, "appKey is required")
		return
	}
	slug := r.PostFormValue("slug")
	if slug == "" {
		slug = page.PreviewSlug
	}

	var instances []*page.Instance
	if raw := r.PostFormValue("instances"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &instances); err != nil {
			writeBuilderError(w, http.StatusBadRequest, "instances is not a valid JSON list")
			return
		}
	}

	saved, err := s.gateway.SavePage(r.Context(), appKey, name, slug, instances)
	if err != nil {
		s.log.WithError(err).WithField("app", appKey).Error("template save failed")
		writeBuilderError(w, http.StatusInternalServerError, "could not save template")
		return
	}

	s.notify.NotifySaved(appKey, saved.ID, saved.Name)

	writeJSON(w, http.StatusOK, builderResponse{
		Success: true,
		Message: "template saved",
		Data:    map[string]string{"templateId": saved.ID},
	})
}

func (s *Server) loadTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := r.PostFormValue("templateId")
	if templateID == "" {
		writeBuilderError(w, http.StatusBadRequest, "templateId is required")
		return
	}

	p, err := s.gateway.LoadPage(r.Context(), templateID)
	if err != nil {
		if errors.HasCode(err, errors.CodePageNotFound) {
			writeBuilderError(w, http.StatusNotFound, "template not found")
			return
		}
		s.log.WithError(err).WithField("template", templateID).Error("template load failed")
		writeBuilderError(w, http.StatusInternalServerError, "could not load template")
		return
	}

	writeJSON(w, http.StatusOK, builderResponse{
		Success: true,
		Message: "template loaded",
		Data:    p,
	})
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	appKey := r.PostFormValue("appKey")
	if appKey == "" {
		writeBuilderError(w, http.StatusBadRequest, "appKey is required")
		return
	}

	pages, err := s.gateway.ListPages(r.Context(), appKey)
	if err != nil {
		s.log.WithError(err).WithField("app", appKey).Error("template list failed")
		writeBuilderError(w, http.StatusInternalServerError, "could not list templates")
		return
	}

	summaries := make([]templateSummary, 0, len(pages))
	for _, p := range pages {
		summaries = append(summaries, templateSummary{
			ID:        p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Instances: len(p.Instances),
			UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	writeJSON(w, http.StatusOK, builderResponse{
		Success: true,
		Message: "templates listed",
		Data:    summaries,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBuilderError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, builderResponse{Success: false, Message: msg})
}
