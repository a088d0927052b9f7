package httpserver

import (
	"errors"
	"net/http"

	followerrors "plume/contexts/community/follow-service/domain/errors"
	followhttp "plume/contexts/community/follow-service/transport/http"
	notificationerrors "plume/contexts/community/notification-service/domain/errors"
	notificationhttp "plume/contexts/community/notification-service/transport/http"
)

func (s *Server) handleSearchPeople(w http.ResponseWriter, r *http.Request) {
	resp, err := s.follows.Handler.SearchPeopleHandler(
		r.Context(),
		resolveUserID(r),
		r.URL.Query().Get("q"),
	)
	if err != nil {
		writeFollowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	resp, err := s.follows.Handler.ProfileHandler(
		r.Context(),
		resolveUserID(r),
		r.PathValue("user_id"),
	)
	if err != nil {
		writeFollowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writeFollowError(w, http.StatusUnauthorized, "authentication_required", "X-User-Id header is required")
		return
	}

	resp, err := s.follows.Handler.ToggleFollowHandler(r.Context(), userID, r.PathValue("user_id"))
	if err != nil {
		writeFollowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	resp, err := s.notifications.Handler.InboxHandler(r.Context(), resolveUserID(r))
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNotificationSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.notifications.Handler.SummaryHandler(r.Context(), resolveUserID(r))
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	resp, err := s.notifications.Handler.MarkAllReadHandler(r.Context(), resolveUserID(r))
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeFollowDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, followerrors.ErrAuthenticationRequired):
		writeFollowError(w, http.StatusUnauthorized, "authentication_required", err.Error())
	case errors.Is(err, followerrors.ErrPersonNotFound):
		writeFollowError(w, http.StatusNotFound, "person_not_found", err.Error())
	case errors.Is(err, followerrors.ErrSelfFollow),
		errors.Is(err, followerrors.ErrInvalidUserID):
		writeFollowError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
	default:
		writeFollowError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationerrors.ErrAuthenticationRequired):
		writeNotificationError(w, http.StatusUnauthorized, "authentication_required", err.Error())
	default:
		writeNotificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeFollowError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, followhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeNotificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, notificationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
