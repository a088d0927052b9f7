package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "plume/contexts/publishing/poll-engine/domain/errors"
)

var ballotNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestDecideBallotSelectsFreshOption(t *testing.T) {
	poll := buildPoll(1)

	change, err := poll.DecideBallot("opt-red", "voter", ballotNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(change.Select) != 1 || change.Select[0] != "opt-red" {
		t.Fatalf("expected select of opt-red, got %+v", change)
	}
	if len(change.Withdraw) != 0 {
		t.Fatalf("expected no withdrawals, got %+v", change)
	}
}

func TestDecideBallotTogglesOffExistingVote(t *testing.T) {
	poll := buildPoll(1)
	poll.Options[0].Voters = votersOf("voter")

	change, err := poll.DecideBallot("opt-red", "voter", ballotNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(change.Select) != 0 {
		t.Fatalf("expected pure withdrawal, got %+v", change)
	}
	if len(change.Withdraw) != 1 || change.Withdraw[0] != "opt-red" {
		t.Fatalf("expected withdrawal of opt-red, got %+v", change)
	}
}

func TestDecideBallotSingleChoiceReplacesPriorVote(t *testing.T) {
	poll := buildPoll(1)
	poll.Options[0].Voters = votersOf("voter")

	change, err := poll.DecideBallot("opt-blue", "voter", ballotNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(change.Select) != 1 || change.Select[0] != "opt-blue" {
		t.Fatalf("expected select of opt-blue, got %+v", change)
	}
	if len(change.Withdraw) != 1 || change.Withdraw[0] != "opt-red" {
		t.Fatalf("expected withdrawal of opt-red, got %+v", change)
	}
}

func TestDecideBallotMultiChoiceEnforcesLimit(t *testing.T) {
	poll := buildPoll(2)
	poll.Options[0].Voters = votersOf("voter")
	poll.Options[1].Voters = votersOf("voter")

	_, err := poll.DecideBallot("opt-green", "voter", ballotNow)
	if !errors.Is(err, domainerrors.ErrChoiceLimitExceeded) {
		t.Fatalf("expected choice limit error, got %v", err)
	}
	var limitErr domainerrors.ChoiceLimitError
	if !errors.As(err, &limitErr) || limitErr.Max != 2 {
		t.Fatalf("expected limit payload of 2, got %v", err)
	}
}

func TestDecideBallotAllowsWithdrawAtLimit(t *testing.T) {
	poll := buildPoll(2)
	poll.Options[0].Voters = votersOf("voter")
	poll.Options[1].Voters = votersOf("voter")

	change, err := poll.DecideBallot("opt-blue", "voter", ballotNow)
	if err != nil {
		t.Fatalf("expected withdrawal at limit to pass, got %v", err)
	}
	if len(change.Withdraw) != 1 || change.Withdraw[0] != "opt-blue" {
		t.Fatalf("expected withdrawal of opt-blue, got %+v", change)
	}
}

func TestDecideBallotRejectsClosedPoll(t *testing.T) {
	poll := buildPoll(1)
	end := ballotNow.Add(-time.Hour)
	poll.EndsAt = &end

	_, err := poll.DecideBallot("opt-red", "voter", ballotNow)
	if !errors.Is(err, domainerrors.ErrPollClosed) {
		t.Fatalf("expected poll closed error, got %v", err)
	}
}

func TestDecideBallotChecksOptionBeforeWindow(t *testing.T) {
	poll := buildPoll(1)
	end := ballotNow.Add(-time.Hour)
	poll.EndsAt = &end

	_, err := poll.DecideBallot("opt-missing", "voter", ballotNow)
	if !errors.Is(err, domainerrors.ErrOptionNotFound) {
		t.Fatalf("expected option not found, got %v", err)
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	poll := buildPoll(1)
	updated := poll.Apply(BallotChange{Select: []string{"opt-red"}}, "voter")

	if poll.Options[0].HasVoter("voter") {
		t.Fatalf("expected source poll to stay unchanged")
	}
	if !updated.Options[0].HasVoter("voter") {
		t.Fatalf("expected updated poll to carry the vote")
	}
}
