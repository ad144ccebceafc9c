package utils

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Hamlet", "Hamlet"},
		{"inner runs", "Ein   Sommernachtstraum", "Ein Sommernachtstraum"},
		{"markup residue", "\n\t  Regie:\n  Max Muster  \n", "Regie: Max Muster"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHashURL(t *testing.T) {
	a := HashURL("https://theater.example/repertoire/hamlet/")
	b := HashURL("https://theater.example/repertoire/faust/")

	if a == b {
		t.Error("Different URLs must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("Expected a 64-char hex digest, got %d chars", len(a))
	}
	if a != HashURL("https://theater.example/repertoire/hamlet/") {
		t.Error("Hash must be stable for the same URL")
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		href     string
		expected string
	}{
		{"relative path", "https://theater.example/spielzeit/", "/repertoire/7/", "https://theater.example/repertoire/7/"},
		{"absolute href", "https://theater.example", "https://tickets.example/h", "https://tickets.example/h"},
		{"empty href", "https://theater.example", "", ""},
		{"protocol relative", "https://theater.example", "//cdn.example/img.jpg", "https://cdn.example/img.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveURL(tt.base, tt.href); got != tt.expected {
				t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.expected)
			}
		})
	}
}
