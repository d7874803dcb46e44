package text

import "testing"

func TestOneLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "Forbidden", 20, "Forbidden"},
		{"exact length unchanged", "12345", 5, "12345"},
		{"json error body flattened", "{\n  \"error\": {\n    \"code\": \"Request_ResourceNotFound\"\n  }\n}", 80, `{ "error": { "code": "Request_ResourceNotFound" } }`},
		{"cut with ellipsis", "property 'mail' is missing on Build Agent", 20, "property 'mail' i..."},
		{"unicode cut on rune boundary", "Équipe Données Paris", 10, "Équipe ..."},
		{"whitespace only", " \t\r\n ", 10, ""},
		{"empty", "", 10, ""},
		{"tiny maxLen clamped", "hello", 1, "h..."},
		{"negative maxLen clamped", "hello", -3, "h..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OneLine(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("OneLine(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}
