package sanitize

import (
	"strings"
	"testing"
)

func TestSanitizer_RichText(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"texto vazio", "", ""},
		{"texto simples", "Procuramos backend!", "Procuramos backend!"},
		{"html seguro preservado", "<p><strong>Go</strong> e <em>gRPC</em></p>", "<p><strong>Go</strong> e <em>gRPC</em></p>"},
		{"script removido", "<p>Oi</p><script>alert('xss')</script>", "<p>Oi</p>"},
		{"listas preservadas", "<ul><li>API</li><li>Web</li></ul>", "<ul><li>API</li><li>Web</li></ul>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.RichText(tt.input); got != tt.expected {
				t.Errorf("esperava %q, obteve %q", tt.expected, got)
			}
		})
	}

	t.Run("remove onclick e javascript:", func(t *testing.T) {
		got := s.RichText(`<a href="javascript:alert(1)" onclick="x()">link</a>`)
		if strings.Contains(got, "javascript:") || strings.Contains(got, "onclick") {
			t.Errorf("esperava atributos perigosos removidos, obteve %q", got)
		}
	})
}

func TestSanitizer_PlainText(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"remove tags", "<b>oi</b> <i>tudo bem?</i>", "oi tudo bem?"},
		{"remove script", "olá<script>alert(1)</script>", "olá"},
		{"preserva caracteres especiais", "Tom & Jerry's", "Tom & Jerry's"},
		{"apara espaços", "  oi  ", "oi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.PlainText(tt.input); got != tt.expected {
				t.Errorf("esperava %q, obteve %q", tt.expected, got)
			}
		})
	}
}
