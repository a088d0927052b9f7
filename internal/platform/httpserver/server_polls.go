package httpserver

import (
	"errors"
	"net/http"

	pollerrors "plume/contexts/publishing/poll-engine/domain/errors"
	pollhttp "plume/contexts/publishing/poll-engine/transport/http"
)

func (s *Server) handlePollTally(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.TallyHandler(r.Context(), resolveUserID(r), r.PathValue("slug"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writePollError(w, http.StatusUnauthorized, "authentication_required", "X-User-Id header is required")
		return
	}

	resp, err := s.polls.Handler.CastVoteHandler(
		r.Context(),
		userID,
		r.PathValue("slug"),
		r.PathValue("option_id"),
	)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePollDomainError(w http.ResponseWriter, err error) {
	var limitErr pollerrors.ChoiceLimitError
	switch {
	case errors.As(err, &limitErr):
		writeJSON(w, http.StatusConflict, pollhttp.ErrorResponse{
			Code:    "choice_limit_exceeded",
			Message: err.Error(),
			Max:     limitErr.Max,
		})
	case errors.Is(err, pollerrors.ErrAuthenticationRequired):
		writePollError(w, http.StatusUnauthorized, "authentication_required", err.Error())
	case errors.Is(err, pollerrors.ErrPollNotFound),
		errors.Is(err, pollerrors.ErrOptionNotFound):
		writePollError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, pollerrors.ErrPollClosed):
		writePollError(w, http.StatusConflict, "poll_closed", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidBallotInput):
		writePollError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
