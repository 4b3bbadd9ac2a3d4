package attemptclient

import "testing"

func TestStoreHappyPath(t *testing.T) {
	store := NewStore()
	if store.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", store.State())
	}

	steps := []struct {
		event Event
		want  State
	}{
		{EventBegin, StateAttempting},
		{EventReview, StateReviewing},
		{EventResume, StateAttempting},
		{EventFinish, StateShowingResults},
		{EventReset, StateIdle},
	}
	for _, step := range steps {
		got, err := store.Dispatch(step.event)
		if err != nil {
			t.Fatalf("Dispatch(%s): %v", step.event, err)
		}
		if got != step.want {
			t.Fatalf("Dispatch(%s) = %s, want %s", step.event, got, step.want)
		}
	}
}

func TestStoreRejectsUndeclaredTransitions(t *testing.T) {
	tests := []struct {
		name   string
		setup  []Event
		event  Event
		inward State
	}{
		{"finish from idle", nil, EventFinish, StateIdle},
		{"begin while attempting", []Event{EventBegin}, EventBegin, StateAttempting},
		{"resume while attempting", []Event{EventBegin}, EventResume, StateAttempting},
		{"review after results", []Event{EventBegin, EventFinish}, EventReview, StateShowingResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			for _, event := range tt.setup {
				if _, err := store.Dispatch(event); err != nil {
					t.Fatalf("setup Dispatch(%s): %v", event, err)
				}
			}
			if _, err := store.Dispatch(tt.event); err == nil {
				t.Fatalf("Dispatch(%s) in %s succeeded, want error", tt.event, tt.inward)
			}
			if store.State() != tt.inward {
				t.Fatalf("state after rejected event = %s, want unchanged %s", store.State(), tt.inward)
			}
		})
	}
}

func TestStoreCanAnswer(t *testing.T) {
	store := NewStore()
	if store.CanAnswer() {
		t.Errorf("CanAnswer in idle")
	}
	store.Dispatch(EventBegin)
	if !store.CanAnswer() {
		t.Errorf("cannot answer while attempting")
	}
	store.Dispatch(EventReview)
	if store.CanAnswer() {
		t.Errorf("CanAnswer while reviewing")
	}
}
