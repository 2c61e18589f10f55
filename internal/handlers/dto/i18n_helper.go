package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
)

const fallbackLanguage = "en"

// T traduz key no idioma da requisição; sem serviço no contexto devolve a própria chave.
// Uso: dto.T(c, "validation.max", map[string]any{"Field": "title", "Param": "120"})
func T(c *gin.Context, key string, params ...map[string]any) string {
	service, ok := middleware.RequestTranslator(c)
	if !ok {
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma da requisição
func GetLanguage(c *gin.Context) string {
	if lang := middleware.RequestLanguage(c); lang != "" {
		return lang
	}
	return fallbackLanguage
}
