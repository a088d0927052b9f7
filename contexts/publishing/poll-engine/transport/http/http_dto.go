package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Max     int    `json:"max,omitempty"`
}

type PollOptionPayload struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Votes    int    `json:"votes"`
	Percent  int    `json:"percent"`
	Selected bool   `json:"selected"`
}

// PollResponse is the partial-update payload shared by the tally read and
// the cast-vote write.
type PollResponse struct {
	OK       bool                `json:"ok"`
	Open     bool                `json:"open"`
	Total    int                 `json:"total"`
	Max      int                 `json:"max"`
	Options  []PollOptionPayload `json:"options"`
	Selected []string            `json:"selected,omitempty"`
}
