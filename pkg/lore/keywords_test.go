package lore

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Black Obelisk", "the black obelisk"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
		{"   ", ""},
		{"古神的低语", "古神的低语"},
	}
	for _, tt := range tests {
		if got := Canonical(tt.in); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppend(t *testing.T) {
	list := Append(nil, "The Black Obelisk")
	list = Append(list, "the black  obelisk") // canonical duplicate
	list = Append(list, "")
	list = Append(list, "sunken chapel")

	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(list), list)
	}
	if list[0] != "the black obelisk" || list[1] != "sunken chapel" {
		t.Errorf("unexpected list contents: %v", list)
	}
}

func TestContains(t *testing.T) {
	list := []string{"the black obelisk", "sunken chapel"}

	if !Contains(list, "Black Obelisk") {
		t.Error("expected partial keyword to match stored entry")
	}
	if !Contains(list, "the old sunken chapel ruins") {
		t.Error("expected stored entry to match inside longer topic")
	}
	if Contains(list, "red tower") {
		t.Error("unrelated keyword should not match")
	}
	if Contains(list, "") {
		t.Error("empty keyword should never match")
	}
}

func TestAppearsIn(t *testing.T) {
	list := []string{"the black obelisk"}

	kw, ok := AppearsIn(list, "You approach The Black Obelisk once more.")
	if !ok || kw != "the black obelisk" {
		t.Errorf("AppearsIn = (%q, %v), want match", kw, ok)
	}

	if _, ok := AppearsIn(list, "Nothing of note happens."); ok {
		t.Error("expected no match in unrelated text")
	}
}
