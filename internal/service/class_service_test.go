package service

import "testing"

func TestResolveClass(t *testing.T) {
	available := []string{"1A", "1B", "2A"}

	tests := []struct {
		name      string
		token     string
		available []string
		want      string
	}{
		{name: "exact match", token: "1B", available: available, want: "1B"},
		{name: "exact match lowercase", token: "1b", available: available, want: "1B"},
		{name: "exact match padded", token: "  1 B ", available: available, want: "1B"},
		{name: "digits only first by scan order", token: "1", available: available, want: "1A"},
		{name: "digits only second grade", token: "2", available: available, want: "2A"},
		{name: "fallback absent grade", token: "9", available: available, want: "9A"},
		{name: "fallback absent grade with letter", token: "9C", available: available, want: "9C"},
		{name: "letter missing falls back to prefix", token: "1C", available: available, want: "1A"},
		{name: "empty roster", token: "3", available: nil, want: "3A"},
		{name: "empty token empty roster", token: "", available: nil, want: "A"},
		{name: "no digits picks first available", token: "X", available: available, want: "1A"},
		{name: "trailing noise ignored", token: "1B extra", available: available, want: "1B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveClass(tt.token, tt.available); got != tt.want {
				t.Errorf("ResolveClass(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestSplitClassToken(t *testing.T) {
	tests := []struct {
		token  string
		digits string
		letter string
	}{
		{token: "1A", digits: "1", letter: "A"},
		{token: "12B", digits: "12", letter: "B"},
		{token: "7", digits: "7", letter: ""},
		{token: "A", digits: "", letter: "A"},
		{token: "", digits: "", letter: ""},
		{token: "3A1", digits: "3", letter: "A"},
	}
	for _, tt := range tests {
		digits, letter := splitClassToken(tt.token)
		if digits != tt.digits || letter != tt.letter {
			t.Errorf("splitClassToken(%q) = (%q, %q), want (%q, %q)",
				tt.token, digits, letter, tt.digits, tt.letter)
		}
	}
}
