package middleware

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey guarda o idioma resolvido da requisição
	LanguageContextKey = "language"
	// I18nServiceContextKey guarda o serviço de tradução
	I18nServiceContextKey = "i18n_service"
)

// Language resolve o idioma da requisição e o expõe em Content-Language.
// Ordem: ?lang=, Accept-Language (por peso q), idioma padrão.
func Language(service *i18n.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := ""
		if query := c.Query("lang"); query != "" && service.IsLanguageSupported(query) {
			lang = query
		}
		if lang == "" {
			lang = negotiate(service, c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = service.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, service)
		c.Header("Content-Language", lang)
		c.Next()
	}
}

// RequestLanguage retorna o idioma resolvido; vazio fora do middleware
func RequestLanguage(c *gin.Context) string {
	return c.GetString(LanguageContextKey)
}

// RequestTranslator retorna o serviço de tradução da requisição
func RequestTranslator(c *gin.Context) (*i18n.Service, bool) {
	value, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return nil, false
	}
	service, ok := value.(*i18n.Service)
	return service, ok
}

type weightedTag struct {
	tag    string
	weight float64
}

// negotiate escolhe o idioma suportado de maior peso em um header Accept-Language.
// "pt" casa com "pt-BR" e "ko-KR" casa com "ko".
func negotiate(service *i18n.Service, header string) string {
	if header == "" {
		return ""
	}

	tags := parseAcceptLanguage(header)
	supported := service.GetSupportedLanguages()

	for _, candidate := range tags {
		if service.IsLanguageSupported(candidate.tag) {
			return candidate.tag
		}
		base, _, _ := strings.Cut(candidate.tag, "-")
		for _, lang := range supported {
			langBase, _, _ := strings.Cut(lang, "-")
			if strings.EqualFold(langBase, base) {
				return lang
			}
		}
	}
	return ""
}

// parseAcceptLanguage retorna as tags ordenadas por peso, preservando a ordem do header nos empates
func parseAcceptLanguage(header string) []weightedTag {
	var tags []weightedTag
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "*" {
			continue
		}

		weight := 1.0
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(q, 64)
			if err != nil {
				continue
			}
			weight = parsed
		}
		if weight <= 0 {
			continue
		}
		tags = append(tags, weightedTag{tag: tag, weight: weight})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].weight > tags[j].weight
	})
	return tags
}
