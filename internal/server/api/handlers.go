package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hackinpovo/inventory/internal/server/items"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toAuth(user, token))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toAuth(user, token))
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	list, err := s.items.ListItems(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItems(list))
}

// handleSearchItems serves GET /items/search?query=&tagIds=a,b.
func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var tagIDs []string
	for _, id := range strings.Split(q.Get("tagIds"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			tagIDs = append(tagIDs, id)
		}
	}

	list, err := s.items.Search(r.Context(), q.Get("query"), tagIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItems(list))
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.items.CreateItem(r.Context(), userIDFromContext(r.Context()), items.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Used:        req.Used,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toItem(item))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.items.UpdateItem(r.Context(), chi.URLParam(r, "id"), items.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItem(item))
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.items.SetQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItem(item))
}

func (s *Server) handleSetUsed(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.items.SetUsed(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItem(item))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.items.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	list, err := s.items.ListTags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toTags(list))
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	tag, err := s.items.CreateTag(r.Context(), items.CreateTagInput{Name: req.Name, Color: req.Color})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toTag(tag))
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.items.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
