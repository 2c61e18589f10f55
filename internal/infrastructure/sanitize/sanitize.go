package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
)

// Sanitizer implementa ports.Sanitizer com políticas do bluemonday.
// As políticas são seguras para uso concorrente depois de construídas.
type Sanitizer struct {
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
}

// New cria o sanitizer: UGC para conteúdo de posts, estrito para mensagens
func New() ports.Sanitizer {
	rich := bluemonday.UGCPolicy()
	rich.AllowElements("u", "s", "mark")
	rich.RequireNoFollowOnLinks(true)

	return &Sanitizer{
		rich:   rich,
		strict: bluemonday.StrictPolicy(),
	}
}

// RichText mantém formatação segura e remove scripts, handlers e URLs perigosas
func (s *Sanitizer) RichText(input string) string {
	return strings.TrimSpace(s.rich.Sanitize(input))
}

// PlainText remove todas as tags e devolve o texto sem entidades HTML
func (s *Sanitizer) PlainText(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(input)))
}
