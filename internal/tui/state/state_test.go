package state

import (
	"testing"

	"github.com/glabrego/crates-cli/internal/registry"
)

func TestClampCursor(t *testing.T) {
	tests := []struct {
		cursor, size, want int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 9},
		{-3, 10, 0},
		{5, 0, 0},
	}
	for _, tc := range tests {
		if got := ClampCursor(tc.cursor, tc.size); got != tc.want {
			t.Fatalf("ClampCursor(%d, %d) = %d, want %d", tc.cursor, tc.size, got, tc.want)
		}
	}
}

func TestMaxPage(t *testing.T) {
	tests := []struct {
		total, pageSize, want uint64
	}{
		{100, 25, 4},
		{101, 25, 5},
		{99, 25, 4},
		{0, 25, 1},
		{24, 25, 1},
		{25, 25, 1},
		{10, 0, 1},
	}
	for _, tc := range tests {
		if got := MaxPage(tc.total, tc.pageSize); got != tc.want {
			t.Fatalf("MaxPage(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(0, 100, 25); got != 1 {
		t.Fatalf("page below 1 must clamp to 1, got %d", got)
	}
	if got := ClampPage(99, 100, 25); got != 4 {
		t.Fatalf("page above max must clamp to max, got %d", got)
	}
	if got := ClampPage(3, 100, 25); got != 3 {
		t.Fatalf("in-range page must pass through, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(100, 50, 20)
	if start != 40 || end != 60 {
		t.Fatalf("expected window [40,60), got [%d,%d)", start, end)
	}
	start, end = CenteredWindow(10, 5, 20)
	if start != 0 || end != 10 {
		t.Fatalf("short list must not window, got [%d,%d)", start, end)
	}
	start, end = CenteredWindow(100, 99, 20)
	if start != 80 || end != 100 {
		t.Fatalf("cursor at end must pin window, got [%d,%d)", start, end)
	}
}

func TestFilterCrates(t *testing.T) {
	crates := []registry.Crate{
		{Name: "tokio", Description: "An event-driven runtime"},
		{Name: "serde", Description: "Serialization framework"},
		{Name: "tokio-util", Description: "Utilities for Tokio"},
	}
	got := FilterCrates(crates, "tokio")
	if len(got) != 2 || got[0].Name != "tokio" || got[1].Name != "tokio-util" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	got = FilterCrates(crates, "SERIAL")
	if len(got) != 1 || got[0].Name != "serde" {
		t.Fatalf("filter must match descriptions case-insensitively: %+v", got)
	}
	got = FilterCrates(crates, "tokio util")
	if len(got) != 1 || got[0].Name != "tokio-util" {
		t.Fatalf("every prompt word must match: %+v", got)
	}
	if got := FilterCrates(crates, "  "); len(got) != 3 {
		t.Fatalf("blank prompt must keep everything, got %d", len(got))
	}
	if got := FilterCrates(crates, "nope"); len(got) != 0 {
		t.Fatalf("no-match prompt must return empty, got %+v", got)
	}
}

func TestCrateIndexByName(t *testing.T) {
	crates := []registry.Crate{{Name: "a"}, {Name: "b"}}
	if got := CrateIndexByName(crates, "b"); got != 1 {
		t.Fatalf("CrateIndexByName = %d", got)
	}
	if got := CrateIndexByName(crates, "z"); got != -1 {
		t.Fatalf("missing crate must return -1, got %d", got)
	}
}
