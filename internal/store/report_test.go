package store

import (
	"testing"
	"time"
)

func TestReportRepository_Append(t *testing.T) {
	s := newTestStore(t)

	report, err := s.Reports().Append("session-1", 1, "1 hand(s) detected\nFirst hand: thumb-index\n")
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if report.ID == "" {
		t.Error("expected generated report ID")
	}
	if report.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want %q", report.SessionID, "session-1")
	}
	if report.Hands != 1 {
		t.Errorf("Hands = %d, want 1", report.Hands)
	}
	if report.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestReportRepository_Recent(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.Reports().Append("session-1", 0, "no hands detected"); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	reports, err := s.Reports().Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(reports) != 3 {
		t.Errorf("Recent(3) returned %d reports, want 3", len(reports))
	}

	// Default limit
	reports, err = s.Reports().Recent(0)
	if err != nil {
		t.Fatalf("Recent(0) error = %v", err)
	}
	if len(reports) != 5 {
		t.Errorf("Recent(0) returned %d reports, want 5", len(reports))
	}
}

func TestReportRepository_BySession(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Reports().Append("session-a", 1, "1 hand(s) detected\nFirst hand: open hand\n"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := s.Reports().Append("session-b", 0, "no hands detected"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	reports, err := s.Reports().BySession("session-a")
	if err != nil {
		t.Fatalf("BySession() error = %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("BySession() returned %d reports, want 1", len(reports))
	}
	if reports[0].SessionID != "session-a" {
		t.Errorf("SessionID = %q, want %q", reports[0].SessionID, "session-a")
	}
}

func TestReportRepository_Prune(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Reports().Append("session-1", 0, "no hands detected"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// Cutoff in the past removes nothing.
	removed, err := s.Reports().Prune(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("Prune(past) removed %d, want 0", removed)
	}

	// Cutoff in the future removes the report.
	removed, err = s.Reports().Prune(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune(future) removed %d, want 1", removed)
	}
}
