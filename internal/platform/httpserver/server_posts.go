package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	posterrors "plume/contexts/publishing/post-service/domain/errors"
	posthttp "plume/contexts/publishing/post-service/transport/http"
)

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageRaw := r.URL.Query().Get("page"); pageRaw != "" {
		parsed, err := strconv.Atoi(pageRaw)
		if err != nil {
			writePostError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return
		}
		page = parsed
	}

	resp, err := s.posts.Handler.FeedHandler(r.Context(), page)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	resp, err := s.posts.Handler.HomeHandler(r.Context())
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := s.posts.Handler.DetailHandler(r.Context(), resolveUserID(r), r.PathValue("slug"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writePostError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req posthttp.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePostError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.posts.Handler.CreatePostHandler(r.Context(), userID, req)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writePostError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req posthttp.EditPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePostError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.posts.Handler.EditPostHandler(r.Context(), userID, r.PathValue("slug"), req)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writePostError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.posts.Handler.DeletePostHandler(r.Context(), userID, r.PathValue("slug"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writePostError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.posts.Handler.ToggleLikeHandler(r.Context(), userID, r.PathValue("slug"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writePostError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req posthttp.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePostError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.posts.Handler.AddCommentHandler(r.Context(), userID, r.PathValue("slug"), req)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func writePostDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posterrors.ErrAuthenticationRequired):
		writePostError(w, http.StatusUnauthorized, "authentication_required", err.Error())
	case errors.Is(err, posterrors.ErrForbidden):
		writePostError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, posterrors.ErrPostNotFound):
		writePostError(w, http.StatusNotFound, "post_not_found", err.Error())
	case errors.Is(err, posterrors.ErrSlugConflict):
		writePostError(w, http.StatusConflict, "slug_conflict", err.Error())
	case errors.Is(err, posterrors.ErrInvalidPostType),
		errors.Is(err, posterrors.ErrTitleRequired),
		errors.Is(err, posterrors.ErrContentRequired),
		errors.Is(err, posterrors.ErrOptionsRequired),
		errors.Is(err, posterrors.ErrCommentRequired):
		writePostError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
	default:
		writePostError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePostError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, posthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
