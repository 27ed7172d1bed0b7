package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"koperasi-core/internal/domain/errs"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  bool
	}{
		{
			name: "exactly balanced",
			lines: []Line{
				{AccountCode: "1000", Debit: dec("100.00")},
				{AccountCode: "4000", Credit: dec("100.00")},
			},
			want: true,
		},
		{
			name: "off by a cent is tolerated",
			lines: []Line{
				{AccountCode: "1000", Debit: dec("100.00")},
				{AccountCode: "4000", Credit: dec("99.99")},
			},
			want: true,
		},
		{
			name: "off by more than a cent",
			lines: []Line{
				{AccountCode: "1000", Debit: dec("100.00")},
				{AccountCode: "4000", Credit: dec("99.98")},
			},
			want: false,
		},
		{
			name:  "empty set balances trivially",
			lines: nil,
			want:  true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Balanced(tt.lines); got != tt.want {
				t.Fatalf("Balanced() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_MarkPosted(t *testing.T) {
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)

	e := &Entry{
		Status: StatusDraft,
		Lines: []Line{
			{AccountCode: "1000", Debit: dec("50.00")},
			{AccountCode: "3000", Credit: dec("50.00")},
		},
	}
	if err := e.MarkPosted(now); err != nil {
		t.Fatalf("MarkPosted draft: unexpected err: %v", err)
	}
	if e.Status != StatusPosted {
		t.Fatalf("status = %s, want posted", e.Status)
	}
	if e.PostedAt == nil || !e.PostedAt.Equal(now) {
		t.Fatalf("PostedAt = %v, want %v", e.PostedAt, now)
	}

	// Posting twice is an illegal transition.
	var stateErr *errs.StateError
	if err := e.MarkPosted(now); !errors.As(err, &stateErr) {
		t.Fatalf("MarkPosted posted: want StateError, got %v", err)
	}
}

func TestEntry_MarkPosted_Unbalanced(t *testing.T) {
	e := &Entry{
		Status: StatusDraft,
		Lines: []Line{
			{AccountCode: "1000", Debit: dec("50.00")},
			{AccountCode: "3000", Credit: dec("49.00")},
		},
	}
	var valErr *errs.ValidationError
	if err := e.MarkPosted(time.Now()); !errors.As(err, &valErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if e.Status != StatusDraft {
		t.Fatalf("status changed on failed post: %s", e.Status)
	}
}

func TestEntry_MarkReversed(t *testing.T) {
	e := &Entry{Status: StatusPosted}
	if err := e.MarkReversed("rev123"); err != nil {
		t.Fatalf("MarkReversed posted: unexpected err: %v", err)
	}
	if e.Status != StatusReversed || e.ReversedBy != "rev123" {
		t.Fatalf("after reverse: status=%s reversedBy=%s", e.Status, e.ReversedBy)
	}

	// Draft entries and already-reversed entries cannot be reversed.
	for _, st := range []Status{StatusDraft, StatusReversed} {
		e := &Entry{Status: st}
		var stateErr *errs.StateError
		if err := e.MarkReversed("x"); !errors.As(err, &stateErr) {
			t.Fatalf("MarkReversed %s: want StateError, got %v", st, err)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	d := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := FormatNumber("JE", d, 7); got != "JE-20250131-0007" {
		t.Fatalf("FormatNumber = %s", got)
	}
	if got := FormatNumber("RCP", d, 123); got != "RCP-20250131-0123" {
		t.Fatalf("FormatNumber = %s", got)
	}
	if got := DayScope("JE", d); got != "JE-20250131" {
		t.Fatalf("DayScope = %s", got)
	}
}
