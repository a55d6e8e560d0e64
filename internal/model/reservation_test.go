package model

import "testing"

func TestCanTransitionTo(t *testing.T) {
    tests := []struct {
        name string
        from ReservationStatus
        to   ReservationStatus
        want bool
    }{
        {"pending to confirmed", StatusPending, StatusConfirmed, true},
        {"pending to cancelled", StatusPending, StatusCancelled, true},
        {"pending to completed", StatusPending, StatusCompleted, false},
        {"pending to pending", StatusPending, StatusPending, false},
        {"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
        {"confirmed to completed", StatusConfirmed, StatusCompleted, true},
        {"confirmed to pending", StatusConfirmed, StatusPending, false},
        {"confirmed to confirmed", StatusConfirmed, StatusConfirmed, false},
        {"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
        {"cancelled to cancelled", StatusCancelled, StatusCancelled, false},
        {"completed to cancelled", StatusCompleted, StatusCancelled, false},
        {"completed to pending", StatusCompleted, StatusPending, false},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
                t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
            }
        })
    }
}

func TestParseReservationStatus(t *testing.T) {
    for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
        got, ok := ParseReservationStatus(string(s))
        if !ok || got != s {
            t.Errorf("ParseReservationStatus(%q) = %q, %v", s, got, ok)
        }
    }
    for _, raw := range []string{"", "pending", "UNKNOWN", "DONE"} {
        if _, ok := ParseReservationStatus(raw); ok {
            t.Errorf("ParseReservationStatus(%q) accepted unknown status", raw)
        }
    }
}

func TestActiveAndTerminal(t *testing.T) {
    tests := []struct {
        status   ReservationStatus
        active   bool
        terminal bool
    }{
        {StatusPending, true, false},
        {StatusConfirmed, true, false},
        {StatusCancelled, false, true},
        {StatusCompleted, false, true},
    }
    for _, tt := range tests {
        if got := tt.status.Active(); got != tt.active {
            t.Errorf("%s.Active() = %v, want %v", tt.status, got, tt.active)
        }
        if got := tt.status.Terminal(); got != tt.terminal {
            t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
        }
    }
}
