package entities

import (
	"time"

	domainerrors "plume/contexts/publishing/poll-engine/domain/errors"
)

// BallotChange is the pure outcome of one cast-vote decision: which options
// gain the voter and which lose them. Empty change never happens; every
// accepted ballot mutates at least one set.
type BallotChange struct {
	Select   []string
	Withdraw []string
}

// DecideBallot applies the voting rules against a snapshot of the poll and
// returns the membership change for the user without mutating anything.
// Callers must run it inside the per-post critical section so the snapshot
// cannot go stale between the count check and the write.
func (p Poll) DecideBallot(optionID string, userID string, now time.Time) (BallotChange, error) {
	var target *Option
	for i := range p.Options {
		if p.Options[i].OptionID == optionID {
			target = &p.Options[i]
			break
		}
	}
	if target == nil {
		return BallotChange{}, domainerrors.ErrOptionNotFound
	}

	if !p.Open(now) {
		return BallotChange{}, domainerrors.ErrPollClosed
	}

	// Toggle rule: withdrawing only shrinks the selection, so it is allowed
	// regardless of the choice limit.
	if target.HasVoter(userID) {
		return BallotChange{Withdraw: []string{target.OptionID}}, nil
	}

	if p.MaxChoices <= 1 {
		// Single-choice mode replaces the prior selection instead of
		// rejecting the new one.
		var withdraw []string
		for _, option := range p.Options {
			if option.OptionID != target.OptionID && option.HasVoter(userID) {
				withdraw = append(withdraw, option.OptionID)
			}
		}
		return BallotChange{Select: []string{target.OptionID}, Withdraw: withdraw}, nil
	}

	if p.selectionCount(userID) >= p.MaxChoices {
		return BallotChange{}, domainerrors.ChoiceLimitError{Max: p.MaxChoices}
	}
	return BallotChange{Select: []string{target.OptionID}}, nil
}

// Apply returns a copy of the poll with the change applied for the user.
// Storage adapters that persist the change row-by-row use this to produce
// the post-change snapshot without a second read.
func (p Poll) Apply(change BallotChange, userID string) Poll {
	updated := p
	updated.Options = make([]Option, len(p.Options))
	for i, option := range p.Options {
		voters := make(map[string]struct{}, len(option.Voters))
		for voter := range option.Voters {
			voters[voter] = struct{}{}
		}
		option.Voters = voters
		updated.Options[i] = option
	}
	for _, id := range change.Withdraw {
		for i := range updated.Options {
			if updated.Options[i].OptionID == id {
				delete(updated.Options[i].Voters, userID)
			}
		}
	}
	for _, id := range change.Select {
		for i := range updated.Options {
			if updated.Options[i].OptionID == id {
				updated.Options[i].Voters[userID] = struct{}{}
			}
		}
	}
	return updated
}
