package reconcile

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello\nworld\n", "hello\nworld"},
		{"trailing spaces", "hello   \nworld\t\n", "hello\nworld"},
		{"crlf", "hello\r\nworld\r\n", "hello\nworld"},
		{"no final newline", "hello\nworld", "hello\nworld"},
		{"extra final newlines", "hello\nworld\n\n\n", "hello\nworld"},
		{"internal blank lines kept", "a\n\nb\n", "a\n\nb"},
		{"leading whitespace kept", "  indented\n", "  indented"},
		{"empty", "", ""},
		{"only whitespace", "   \n\t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize([]byte(tt.in)); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "same\n", "same\n", true},
		{"trailing whitespace only", "same  \n", "same\n", true},
		{"newline style only", "a\r\nb\r\n", "a\nb\n", true},
		{"missing final newline", "a\nb", "a\nb\n", true},
		{"different content", "v2 instructions", "v1 instructions", false},
		{"indentation differs", "  a\n", "a\n", false},
		{"internal blank line differs", "a\n\nb\n", "a\nb\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equivalent([]byte(tt.a), []byte(tt.b)); got != tt.want {
				t.Errorf("Equivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
