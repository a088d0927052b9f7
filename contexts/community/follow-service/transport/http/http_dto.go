package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PersonPayload struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
	Followers   int       `json:"followers"`
	Following   bool      `json:"following"`
}

type PeopleResponse struct {
	Items []PersonPayload `json:"items"`
}

type ToggleFollowResponse struct {
	Following bool `json:"following"`
	Followers int  `json:"followers"`
}
