package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	followservice "plume/contexts/community/follow-service"
	followentities "plume/contexts/community/follow-service/domain/entities"
	notificationservice "plume/contexts/community/notification-service"
	pollengine "plume/contexts/publishing/poll-engine"
	pollentities "plume/contexts/publishing/poll-engine/domain/entities"
	postservice "plume/contexts/publishing/post-service"
)

func newTestServer() (*Server, pollengine.Module) {
	polls := pollengine.NewInMemoryModule([]pollentities.Poll{
		{
			PostID:     "post-1",
			Slug:       "best-color",
			Type:       pollentities.PostTypePoll,
			Title:      "Best color?",
			AuthorID:   "author-1",
			MaxChoices: 1,
			Options: []pollentities.Option{
				{OptionID: "opt-red", PostID: "post-1", Text: "Red", Position: 0},
				{OptionID: "opt-blue", PostID: "post-1", Text: "Blue", Position: 1},
			},
		},
	}, nil)
	polls.Store.SetNow(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))

	posts := postservice.NewInMemoryModule(nil, nil)
	follows := followservice.NewInMemoryModule([]followentities.Person{
		{UserID: "alice", Username: "alice", DisplayName: "Alice"},
		{UserID: "bob", Username: "bob", DisplayName: "Bob"},
	}, nil, nil)
	notifications := notificationservice.NewInMemoryModule(nil)

	return New(posts, polls, follows, notifications, nil, ""), polls
}

func doRequest(t *testing.T, server *Server, method string, path string, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestCastVoteRequiresIdentityHeader(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/posts/best-color/poll/votes/opt-red", "", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestCastVoteAndTallyRoundTrip(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/posts/best-color/poll/votes/opt-red", "voter", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var voteResp struct {
		OK       bool     `json:"ok"`
		Open     bool     `json:"open"`
		Total    int      `json:"total"`
		Selected []string `json:"selected"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &voteResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !voteResp.OK || !voteResp.Open || voteResp.Total != 1 {
		t.Fatalf("unexpected vote response: %+v", voteResp)
	}
	if len(voteResp.Selected) != 1 || voteResp.Selected[0] != "opt-red" {
		t.Fatalf("expected selection opt-red, got %v", voteResp.Selected)
	}

	recorder = doRequest(t, server, http.MethodGet, "/posts/best-color/poll", "voter", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var tallyResp struct {
		Total   int `json:"total"`
		Options []struct {
			ID       string `json:"id"`
			Percent  int    `json:"percent"`
			Selected bool   `json:"selected"`
		} `json:"options"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &tallyResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if tallyResp.Total != 1 || tallyResp.Options[0].Percent != 100 || !tallyResp.Options[0].Selected {
		t.Fatalf("unexpected tally response: %+v", tallyResp)
	}
}

func TestCastVoteChoiceLimitPayload(t *testing.T) {
	server, polls := newTestServer()
	poll, err := polls.Store.GetPoll(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("poll fetch failed: %v", err)
	}
	poll.MaxChoices = 2
	poll.Options = append(poll.Options, pollentities.Option{
		OptionID: "opt-green", PostID: "post-1", Text: "Green", Position: 2,
	})
	polls.Store.SetPoll(poll)

	for _, optionID := range []string{"opt-red", "opt-blue"} {
		recorder := doRequest(t, server, http.MethodPost, "/posts/best-color/poll/votes/"+optionID, "voter", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("vote on %s failed: %d", optionID, recorder.Code)
		}
	}

	recorder := doRequest(t, server, http.MethodPost, "/posts/best-color/poll/votes/opt-green", "voter", "")
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	var errResp struct {
		Code string `json:"code"`
		Max  int    `json:"max"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if errResp.Code != "choice_limit_exceeded" || errResp.Max != 2 {
		t.Fatalf("unexpected error payload: %+v", errResp)
	}
}

func TestCastVoteClosedPollConflict(t *testing.T) {
	server, polls := newTestServer()
	polls.Store.SetNow(time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC))
	poll, err := polls.Store.GetPoll(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("poll fetch failed: %v", err)
	}
	end := time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC)
	poll.EndsAt = &end
	polls.Store.SetPoll(poll)

	recorder := doRequest(t, server, http.MethodPost, "/posts/best-color/poll/votes/opt-red", "voter", "")
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	var errResp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if errResp.Code != "poll_closed" {
		t.Fatalf("expected poll_closed, got %q", errResp.Code)
	}
}

func TestTallyUnknownSlugNotFound(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodGet, "/posts/deleted-poll/poll", "", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

func TestCreatePostLifecycleOverHTTP(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/posts", "author-1",
		`{"type":"article","title":"Hello World","content":"body"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var created struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.Slug != "hello-world" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}

	recorder = doRequest(t, server, http.MethodGet, "/posts/hello-world", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodDelete, "/posts/hello-world", "intruder", "")
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodDelete, "/posts/hello-world", "author-1", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodGet, "/posts/hello-world", "", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", recorder.Code)
	}
}

func TestCreatePostValidationStatus(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/posts", "author-1",
		`{"type":"poll","title":"Best?","options":["","",""]}`)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodPost, "/posts", "", `{"type":"status","content":"hi"}`)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestFollowEndpointRules(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/people/bob/follow", "alice", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var followResp struct {
		Following bool `json:"following"`
		Followers int  `json:"followers"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &followResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !followResp.Following || followResp.Followers != 1 {
		t.Fatalf("unexpected follow response: %+v", followResp)
	}

	recorder = doRequest(t, server, http.MethodPost, "/people/alice/follow", "alice", "")
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for self-follow, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodPost, "/people/ghost/follow", "alice", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown person, got %d", recorder.Code)
	}
}

func TestNotificationEndpointsRequireIdentity(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodGet, "/notifications", "", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodGet, "/notifications/summary", "bob", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var summary struct {
		Unread int `json:"unread"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if summary.Unread != 0 {
		t.Fatalf("expected empty inbox, got %d", summary.Unread)
	}
}

func TestHomeRouteNotShadowedBySlug(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/posts", "author-1",
		`{"type":"status","content":"hello"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodGet, "/posts/home", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var homeResp struct {
		Items []struct {
			Type string `json:"type"`
		} `json:"items"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &homeResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(homeResp.Items) != 1 || homeResp.Items[0].Type != "status" {
		t.Fatalf("unexpected home payload: %+v", homeResp)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer()

	recorder := doRequest(t, server, http.MethodGet, "/health", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}
