package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/chat"
	"github.com/saharah/saharah/internal/contacts"
	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/models"
	"github.com/saharah/saharah/internal/uploads"
)

// requireLogin rejects the request with 401 while nobody is logged in.
func (s *Server) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.deps.Session.LoggedIn() {
			s.respondError(w, http.StatusUnauthorized,
				i18n.T(s.lang(r), "Please log in to use this feature", "اس فیچر کو استعمال کرنے کے لیے لاگ ان کریں"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Contacts.List(r.Context())
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"contacts":      list,
		"relationships": contacts.Relationships(s.lang(r)),
	})
}

type addContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

func (s *Server) handleAddContact(w http.ResponseWriter, r *http.Request) {
	var req addContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := s.deps.Contacts.Add(r.Context(), req.Name, req.Phone, req.Relationship)
	switch {
	case errors.Is(err, contacts.ErrMissingFields), errors.Is(err, contacts.ErrUnknownRelationship):
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.respondStorageError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Contacts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.deps.Uploads.List(r.Context())
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"documents": docs, "total": len(docs)})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.deps.Uploads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

// multipartOverhead is the body allowance on top of the document size limit for the
// multipart framing and the tags field.
const multipartOverhead = 1 << 20

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if limit := s.deps.Uploads.MaxSize(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}
	if err := r.ParseMultipartForm(uploads.DefaultMaxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, uploads.ErrTooLarge.Error())
			return
		}
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "read upload")
		return
	}
	doc, err := s.deps.Uploads.Add(r.Context(), header.Filename, content, uploads.ParseTags(r.FormValue("tags")))
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		s.respondError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, uploads.ErrMissingName):
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.respondStorageError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Uploads.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{"messages": s.deps.Conversation.Messages()})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lang := s.lang(r)
	msg, err := s.deps.Conversation.Send(r.Context(), lang, req.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Warn("assistant unavailable", zap.Error(err))
		s.respondError(w, http.StatusBadGateway,
			i18n.T(lang, "The assistant is unavailable, please try again", "اسسٹنٹ دستیاب نہیں، دوبارہ کوشش کریں"))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"reply": msg})
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	s.deps.Conversation.Clear(s.lang(r))
	s.respondJSON(w, http.StatusOK, map[string]any{"messages": s.deps.Conversation.Messages()})
}

func (s *Server) handleChatTranscript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "chat-transcript.txt"))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, s.deps.Conversation.Transcript(s.lang(r)))
}

type sessionResponse struct {
	LoggedIn bool         `json:"logged_in"`
	User     *models.User `json:"user,omitempty"`
}

func (s *Server) currentSession() sessionResponse {
	return sessionResponse{LoggedIn: s.deps.Session.LoggedIn(), User: s.deps.Session.User()}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.currentSession())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if user.Email == "" {
		s.respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := s.deps.Session.Login(&user); err != nil {
		s.logger.Error("login failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.currentSession())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Session.Logout(); err != nil {
		s.logger.Error("logout failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.currentSession())
}

type languageResponse struct {
	Language  i18n.Language `json:"language"`
	Direction string        `json:"direction"`
}

func languageOf(lang i18n.Language) languageResponse {
	return languageResponse{Language: lang, Direction: i18n.Direction(lang)}
}

func (s *Server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, languageOf(s.deps.Language.Language()))
}

type languageRequest struct {
	Language string `json:"language"`
}

// handleSetLanguage sets the language named in the body, or toggles it when none is given.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	lang := s.deps.Language.Language()
	if req.Language == "" {
		lang, err = s.deps.Language.Toggle()
	} else {
		parsed, ok := i18n.Parse(req.Language)
		if !ok {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown language %q", req.Language))
			return
		}
		lang = parsed
		err = s.deps.Language.Set(lang)
	}
	if err != nil {
		s.logger.Warn("language preference not persisted", zap.Error(err))
	}
	s.respondJSON(w, http.StatusOK, languageOf(lang))
}
