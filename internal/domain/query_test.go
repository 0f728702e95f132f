package domain

import "testing"

func TestQueryStatusTransitions(t *testing.T) {
	cases := []struct {
		from    QueryStatus
		to      QueryStatus
		allowed bool
	}{
		{QueryPending, QuerySearching, true},
		{QuerySearching, QueryCompleted, true},
		{QuerySearching, QueryFailed, true},

		{QueryPending, QueryCompleted, false},
		{QueryPending, QueryFailed, false},
		{QueryPending, QueryPending, false},
		{QuerySearching, QueryPending, false},
		{QuerySearching, QuerySearching, false},
		{QueryCompleted, QueryPending, false},
		{QueryCompleted, QuerySearching, false},
		{QueryCompleted, QueryFailed, false},
		{QueryFailed, QueryPending, false},
		{QueryFailed, QuerySearching, false},
		{QueryFailed, QueryCompleted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestQueryStatusIsTerminal(t *testing.T) {
	if QueryPending.IsTerminal() || QuerySearching.IsTerminal() {
		t.Error("pending and searching must not be terminal")
	}
	if !QueryCompleted.IsTerminal() || !QueryFailed.IsTerminal() {
		t.Error("completed and failed must be terminal")
	}
}

func TestQueryStatusIsValid(t *testing.T) {
	for _, s := range []QueryStatus{QueryPending, QuerySearching, QueryCompleted, QueryFailed} {
		if !s.IsValid() {
			t.Errorf("%s must be valid", s)
		}
	}

	for _, s := range []QueryStatus{"", "done", "PENDING", "in_progress"} {
		if s.IsValid() {
			t.Errorf("%q must not be valid", s)
		}
	}
}

func TestNewQueryStartsPending(t *testing.T) {
	q := NewQuery("id-1", "user-1", "wireless headphones", Preferences{})
	if q.Status != QueryPending {
		t.Errorf("new query status = %s, want %s", q.Status, QueryPending)
	}
}
