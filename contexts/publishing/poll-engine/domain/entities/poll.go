package entities

import (
	"math"
	"time"
)

type PostType string

const (
	PostTypeArticle PostType = "article"
	PostTypeStatus  PostType = "status"
	PostTypePoll    PostType = "poll"
)

// Poll is the voting aggregate: one poll-typed post plus its options and
// their voter sets. Options keep creation order.
type Poll struct {
	PostID     string
	Slug       string
	Type       PostType
	Title      string
	AuthorID   string
	MaxChoices int
	StartsAt   *time.Time
	EndsAt     *time.Time
	Options    []Option
}

type Option struct {
	OptionID string
	PostID   string
	Text     string
	Position int
	Voters   map[string]struct{}
}

func (o Option) HasVoter(userID string) bool {
	_, ok := o.Voters[userID]
	return ok
}

// Open reports whether the poll accepts votes at the given instant.
// Non-poll posts fail closed; unbounded polls are always open.
func (p Poll) Open(now time.Time) bool {
	if p.Type != PostTypePoll {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}

// SelectionFor returns the ids of the options currently selected by the
// user, in option creation order.
func (p Poll) SelectionFor(userID string) []string {
	if userID == "" {
		return nil
	}
	var selected []string
	for _, option := range p.Options {
		if option.HasVoter(userID) {
			selected = append(selected, option.OptionID)
		}
	}
	return selected
}

func (p Poll) selectionCount(userID string) int {
	count := 0
	for _, option := range p.Options {
		if option.HasVoter(userID) {
			count++
		}
	}
	return count
}

type OptionTally struct {
	OptionID string
	Text     string
	Votes    int
	Percent  int
	Selected bool
}

type Tally struct {
	PostID     string
	MaxChoices int
	Total      int
	Options    []OptionTally
}

// TallyFor computes the per-option result in creation order. Percentages
// round half up independently; drift away from 100 is deliberate.
func (p Poll) TallyFor(viewerID string) Tally {
	total := 0
	for _, option := range p.Options {
		total += len(option.Voters)
	}
	items := make([]OptionTally, 0, len(p.Options))
	for _, option := range p.Options {
		votes := len(option.Voters)
		items = append(items, OptionTally{
			OptionID: option.OptionID,
			Text:     option.Text,
			Votes:    votes,
			Percent:  roundPercent(votes, total),
			Selected: viewerID != "" && option.HasVoter(viewerID),
		})
	}
	return Tally{
		PostID:     p.PostID,
		MaxChoices: p.MaxChoices,
		Total:      total,
		Options:    items,
	}
}

func roundPercent(votes int, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(votes)/float64(total)*100 + 0.5))
}
