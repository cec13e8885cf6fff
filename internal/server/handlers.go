package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/directory"
	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/lawdata"
	"github.com/saharah/saharah/internal/models"
	"github.com/saharah/saharah/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListLaws(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cat := s.deps.Store.LoadCatalog(r.Context())
	matches := lawdata.Filter(cat, q.Get("q"), q.Get("category"))
	summaries := make([]*models.CollectionSummary, len(matches))
	for i, c := range matches {
		summaries[i] = c.Summary()
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"collections": summaries, "total": len(summaries)})
}

func (s *Server) handleGetLaw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	col, ok := s.deps.Store.GetCollection(r.Context(), id)
	if !ok {
		s.respondError(w, http.StatusNotFound, i18n.T(s.lang(r), "Law not found", "قانون نہیں ملا"))
		return
	}
	s.respondJSON(w, http.StatusOK, col)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cat := s.deps.Store.LoadCatalog(r.Context())
	main := r.URL.Query().Get("main")
	if main == "" {
		s.respondJSON(w, http.StatusOK, map[string]any{"categories": lawdata.CategoryMenu(cat)})
		return
	}
	mc := models.MainCategory(main)
	if mc != models.LegalLaws && mc != models.IslamicLaws {
		s.respondError(w, http.StatusBadRequest, "main must be \"Legal Laws\" or \"Islamic Laws\"")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"main": mc, "categories": lawdata.SubcategoryMenu(cat, mc)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	if err := s.syncIndex(r.Context()); err != nil {
		s.logger.Error("section reindex failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response, err := s.deps.Engine.Search(r.Context(), &query)
	if errors.Is(err, models.ErrEmptyQuery) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

// syncIndex brings the section index up to the catalog the store currently serves.
func (s *Server) syncIndex(ctx context.Context) error {
	return s.deps.Engine.Sync(ctx, s.deps.Store.LoadCatalog(ctx))
}

func (s *Server) handleListLawyers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang := s.lang(r)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"lawyers":         directory.Filter(lang, q.Get("q"), q.Get("city"), q.Get("specialization")),
		"cities":          directory.Cities(lang),
		"specializations": directory.Specializations(lang),
	})
}

func (s *Server) handleGetLawyer(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(r)
	l, ok := directory.Get(lang, chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, i18n.T(lang, "Lawyer not found", "وکیل نہیں ملا"))
		return
	}
	s.respondJSON(w, http.StatusOK, l)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cat := s.deps.Store.LoadCatalog(ctx)
	contactCount, err := s.deps.Storage.CountContacts(ctx)
	if err != nil {
		s.logger.Error("status: count contacts failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	docCount, err := s.deps.Storage.CountDocuments(ctx)
	if err != nil {
		s.logger.Error("status: count documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]any{
		"collections":        cat.Len(),
		"sections":           cat.SectionCount(),
		"catalog_generation": cat.Generation,
		"indexed_sections":   s.deps.Engine.IndexSize(),
		"contacts":           contactCount,
		"documents":          docCount,
		"language":           s.deps.Language.Language(),
		"logged_in":          s.deps.Session.LoggedIn(),
	}
	if diskBytes, err := storage.DiskUsage(s.deps.DiskPaths...); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// lang is the language of the request: ?lang= when it names one, else the selector's.
func (s *Server) lang(r *http.Request) i18n.Language {
	if lang, ok := i18n.Parse(r.URL.Query().Get("lang")); ok {
		return lang
	}
	return s.deps.Language.Language()
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondStorageError maps storage.ErrNotFound to 404 and anything else to 500.
func (s *Server) respondStorageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, i18n.T(s.lang(r), "Not found", "نہیں ملا"))
		return
	}
	s.logger.Error("storage operation failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}
