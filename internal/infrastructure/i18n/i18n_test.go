package i18n

import (
	"sync"
	"testing"
	"testing/fstest"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
)

// setupTestLocales cria locales em memória para testes
func setupTestLocales(t *testing.T) fstest.MapFS {
	t.Helper()

	return fstest.MapFS{
		"en.json": {Data: []byte(`{
  "welcome": "Welcome, {{.Name}}!",
  "user_created": "User created successfully",
  "error.user_not_found": "User not found"
}`)},
		"pt-BR.json": {Data: []byte(`{
  "welcome": "Bem-vindo, {{.Name}}!",
  "user_created": "Usuário criado com sucesso",
  "error.user_not_found": "Usuário não encontrado"
}`)},
		"ko.json": {Data: []byte(`{
  "welcome": "{{.Name}}님 환영합니다!",
  "user_created": "사용자가 생성되었습니다",
  "error.user_not_found": "사용자를 찾을 수 없습니다"
}`)},
	}
}

func TestNewService(t *testing.T) {
	t.Run("carrega traduções com sucesso", func(t *testing.T) {
		locales := setupTestLocales(t)

		service, err := NewService(locales, "en")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if service.GetDefaultLanguage() != "en" {
			t.Errorf("esperava idioma padrão 'en', obteve '%s'", service.GetDefaultLanguage())
		}

		supportedLangs := service.GetSupportedLanguages()
		if len(supportedLangs) != 3 {
			t.Errorf("esperava 3 idiomas suportados, obteve %d", len(supportedLangs))
		}
	})

	t.Run("erro quando não há arquivos de locale", func(t *testing.T) {
		_, err := NewService(fstest.MapFS{}, "en")
		if err == nil {
			t.Error("esperava erro, obteve sucesso")
		}
	})

	t.Run("erro quando o JSON é inválido", func(t *testing.T) {
		_, err := NewService(fstest.MapFS{"en.json": {Data: []byte("{")}}, "en")
		if err == nil {
			t.Error("esperava erro de parse, obteve sucesso")
		}
	})

	t.Run("erro quando idioma padrão não existe", func(t *testing.T) {
		locales := setupTestLocales(t)

		_, err := NewService(locales, "fr")
		if err == nil {
			t.Error("esperava erro para idioma padrão inexistente, obteve sucesso")
		}
	})
}

func TestService_T(t *testing.T) {
	locales := setupTestLocales(t)
	service, err := NewService(locales, "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	t.Run("traduz mensagem simples em inglês", func(t *testing.T) {
		result := service.T("en", "user_created")
		expected := "User created successfully"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz mensagem simples em português", func(t *testing.T) {
		result := service.T("pt-BR", "user_created")
		expected := "Usuário criado com sucesso"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz mensagem com parâmetros", func(t *testing.T) {
		result := service.T("en", "welcome", map[string]any{"Name": "John"})
		expected := "Welcome, John!"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz mensagem com parâmetros em português", func(t *testing.T) {
		result := service.T("pt-BR", "welcome", map[string]any{"Name": "João"})
		expected := "Bem-vindo, João!"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("fallback para idioma padrão quando chave não existe no idioma solicitado", func(t *testing.T) {
		result := service.T("fr", "user_created")
		expected := "User created successfully" // Fallback para inglês
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz mensagem em coreano", func(t *testing.T) {
		result := service.T("ko", "error.user_not_found")
		expected := "사용자를 찾을 수 없습니다"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("Translate usa o idioma padrão", func(t *testing.T) {
		result := service.Translate("welcome", map[string]any{"Name": "Ana"})
		expected := "Welcome, Ana!"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("retorna chave quando tradução não existe", func(t *testing.T) {
		result := service.T("en", "chave.inexistente")
		expected := "chave.inexistente"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})
}

func TestService_IsLanguageSupported(t *testing.T) {
	locales := setupTestLocales(t)
	service, err := NewService(locales, "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	tests := []struct {
		lang     string
		expected bool
	}{
		{"en", true},
		{"pt-BR", true},
		{"ko", true},
		{"es", false},
		{"fr", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			result := service.IsLanguageSupported(tt.lang)
			if result != tt.expected {
				t.Errorf("para idioma '%s', esperava %v, obteve %v", tt.lang, tt.expected, result)
			}
		})
	}
}

func TestService_ThreadSafety(t *testing.T) {
	locales := setupTestLocales(t)
	service, err := NewService(locales, "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	// Executar traduções concorrentemente
	var wg sync.WaitGroup
	iterations := 100

	for i := 0; i < iterations; i++ {
		wg.Add(3)

		go func() {
			defer wg.Done()
			_ = service.T("en", "welcome", map[string]any{"Name": "Test"})
		}()

		go func() {
			defer wg.Done()
			_ = service.T("pt-BR", "user_created")
		}()

		go func() {
			defer wg.Done()
			_ = service.IsLanguageSupported("en")
		}()
	}

	// Se houver race condition, este teste falhará com -race flag
	wg.Wait()
}

func TestEmbeddedLocales(t *testing.T) {
	service, err := NewEmbeddedService("en")
	if err != nil {
		t.Fatalf("falha ao carregar locales embutidos: %v", err)
	}

	t.Run("todos os idiomas têm as mesmas chaves", func(t *testing.T) {
		reference := service.Keys("en")
		for _, lang := range []string{"pt-BR", "ko"} {
			if !service.IsLanguageSupported(lang) {
				t.Fatalf("idioma %s não carregado", lang)
			}
			keys := make(map[string]bool)
			for _, key := range service.Keys(lang) {
				keys[key] = true
			}
			for _, key := range reference {
				if !keys[key] {
					t.Errorf("chave %s ausente em %s", key, lang)
				}
			}
		}
	})

	t.Run("erros de domínio têm tradução", func(t *testing.T) {
		sentinels := []error{
			domainerrors.ErrUserNotFound,
			domainerrors.ErrDuplicateAttribute,
			domainerrors.ErrCardinalityExceeded,
			domainerrors.ErrAttributeRequired,
			domainerrors.ErrPostNotApplicable,
			domainerrors.ErrDeadlinePassed,
			domainerrors.ErrRoleUnavailable,
			domainerrors.ErrSelfApplicationForbidden,
			domainerrors.ErrDuplicateApplication,
			domainerrors.ErrInvalidStateTransition,
			domainerrors.ErrProposalDisabled,
			domainerrors.ErrNotParticipant,
			domainerrors.ErrStorageUnavailable,
		}
		for _, err := range sentinels {
			key := domainerrors.MessageOf(err)
			if got := service.T("ko", key); got == key {
				t.Errorf("chave %s sem tradução", key)
			}
		}
	})
}

func TestNewService_InvalidTemplate(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": {Data: []byte(`{"broken": "Hello {{.Name"}`)},
	}

	if _, err := NewService(locales, "en"); err == nil {
		t.Fatal("esperava erro para template inválido")
	}
}

func TestService_GetSupportedLanguages(t *testing.T) {
	service, err := NewService(setupTestLocales(t), "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	got := service.GetSupportedLanguages()
	expected := []string{"en", "ko", "pt-BR"}
	if len(got) != len(expected) {
		t.Fatalf("esperava %v, obteve %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("posição %d: esperava '%s', obteve '%s'", i, expected[i], got[i])
		}
	}
}
