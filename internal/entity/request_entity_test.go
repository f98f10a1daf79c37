package entity

import (
	"testing"
)

func TestRequestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   RequestStatus
		to     RequestStatus
		wantOk bool
	}{
		{name: "pending to approved", from: RequestStatusPending, to: RequestStatusApproved, wantOk: true},
		{name: "pending to rejected", from: RequestStatusPending, to: RequestStatusRejected, wantOk: true},
		{name: "pending to delegated", from: RequestStatusPending, to: RequestStatusDelegated, wantOk: true},
		{name: "urgent behaves like pending", from: RequestStatusUrgent, to: RequestStatusApproved, wantOk: true},
		{name: "delegated to approved", from: RequestStatusDelegated, to: RequestStatusApproved, wantOk: true},
		{name: "delegated cannot re-delegate", from: RequestStatusDelegated, to: RequestStatusDelegated, wantOk: false},
		{name: "approved only leaves via scheduling", from: RequestStatusApproved, to: RequestStatusRejected, wantOk: false},
		{name: "approved to scheduled", from: RequestStatusApproved, to: RequestStatusScheduled, wantOk: true},
		{name: "scheduled to in-progress", from: RequestStatusScheduled, to: RequestStatusInProgress, wantOk: true},
		{name: "rejected is absorbing", from: RequestStatusRejected, to: RequestStatusPending, wantOk: false},
		{name: "in-progress is final for triage", from: RequestStatusInProgress, to: RequestStatusApproved, wantOk: false},
		{name: "no backwards move", from: RequestStatusScheduled, to: RequestStatusPending, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.wantOk {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.wantOk)
			}
		})
	}
}

func TestRequestStatusIsTriageable(t *testing.T) {
	triageable := []RequestStatus{RequestStatusPending, RequestStatusUrgent, RequestStatusDelegated}
	for _, s := range triageable {
		if !s.IsTriageable() {
			t.Errorf("IsTriageable(%s) = false, want true", s)
		}
	}

	final := []RequestStatus{RequestStatusApproved, RequestStatusRejected, RequestStatusScheduled, RequestStatusInProgress}
	for _, s := range final {
		if s.IsTriageable() {
			t.Errorf("IsTriageable(%s) = true, want false", s)
		}
	}
}
