package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// message é uma entrada de catálogo; tmpl só existe quando o texto tem interpolação
type message struct {
	text string
	tmpl *template.Template
}

// Service resolve message IDs nos catálogos carregados.
// Os catálogos são imutáveis depois de NewService, então o uso concorrente dispensa lock.
type Service struct {
	catalogs        map[string]map[string]message // [language][key]
	defaultLanguage string
}

// NewEmbeddedService carrega os locales embutidos no binário (en, pt-BR, ko)
func NewEmbeddedService(defaultLang string) (*Service, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded locales: %w", err)
	}
	return NewService(locales, defaultLang)
}

// NewService carrega cada <lang>.json da raiz de locales e pré-compila os templates.
// defaultLang precisa ter um catálogo; é o fallback de chaves ausentes.
func NewService(locales fs.FS, defaultLang string) (*Service, error) {
	files, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	s := &Service{
		catalogs:        make(map[string]map[string]message, len(files)),
		defaultLanguage: defaultLang,
	}

	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".json")

		catalog, err := loadCatalog(locales, file)
		if err != nil {
			return nil, err
		}
		s.catalogs[lang] = catalog
	}

	if _, ok := s.catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	return s, nil
}

func loadCatalog(locales fs.FS, file string) (map[string]message, error) {
	data, err := fs.ReadFile(locales, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
	}

	catalog := make(map[string]message, len(entries))
	for key, text := range entries {
		entry := message{text: text}
		if strings.Contains(text, "{{") {
			tmpl, err := template.New(key).Option("missingkey=zero").Parse(text)
			if err != nil {
				return nil, fmt.Errorf("invalid template for %s in %s: %w", key, file, err)
			}
			entry.tmpl = tmpl
		}
		catalog[key] = entry
	}
	return catalog, nil
}

// T traduz key para lang, caindo no idioma padrão e por fim na própria chave.
// Parâmetros são interpolados com text/template ({{.Field}}, {{.Title}}).
func (s *Service) T(lang, key string, params ...map[string]any) string {
	entry, ok := s.lookup(lang, key)
	if !ok {
		return key
	}
	if entry.tmpl == nil || len(params) == 0 || params[0] == nil {
		return entry.text
	}

	var buf strings.Builder
	if err := entry.tmpl.Execute(&buf, params[0]); err != nil {
		return entry.text
	}
	return buf.String()
}

// Translate traduz no idioma padrão (textos persistidos, como notificações)
func (s *Service) Translate(key string, params map[string]any) string {
	return s.T(s.defaultLanguage, key, params)
}

func (s *Service) lookup(lang, key string) (message, bool) {
	if entry, ok := s.catalogs[lang][key]; ok {
		return entry, true
	}
	entry, ok := s.catalogs[s.defaultLanguage][key]
	return entry, ok
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna os idiomas carregados em ordem alfabética
func (s *Service) GetSupportedLanguages() []string {
	langs := make([]string, 0, len(s.catalogs))
	for lang := range s.catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsLanguageSupported verifica se há catálogo para o idioma
func (s *Service) IsLanguageSupported(lang string) bool {
	_, ok := s.catalogs[lang]
	return ok
}

// Keys retorna as chaves de um idioma em ordem alfabética
func (s *Service) Keys(lang string) []string {
	keys := make([]string, 0, len(s.catalogs[lang]))
	for key := range s.catalogs[lang] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
