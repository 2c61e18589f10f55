package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/infrastructure/validation"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	*problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// MessageResponse é a resposta de operações sem corpo de recurso
type MessageResponse struct {
	Message string `json:"message"`
}

// PageQuery contém os parâmetros de paginação (page >= 1, pageSize até 100)
type PageQuery struct {
	Page     int `form:"page" json:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" json:"pageSize" binding:"omitempty,min=1,max=100"`
}

// problemTitles associa cada tipo de problema à chave do título e ao status HTTP
var problemTitles = map[string]struct {
	titleKey string
	status   int
}{
	domainerrors.ProblemTypeValidation:   {"error.validation.title", http.StatusBadRequest},
	domainerrors.ProblemTypeNotFound:     {"error.not_found.title", http.StatusNotFound},
	domainerrors.ProblemTypeConflict:     {"error.conflict.title", http.StatusConflict},
	domainerrors.ProblemTypeUnauthorized: {"error.unauthorized.title", http.StatusUnauthorized},
	domainerrors.ProblemTypeForbidden:    {"error.forbidden.title", http.StatusForbidden},
	domainerrors.ProblemTypeInternal:     {"error.internal.title", http.StatusInternalServerError},
	domainerrors.ProblemTypeBadRequest:   {"error.bad_request.title", http.StatusBadRequest},
}

// StatusOf retorna o status HTTP de um problem type
func StatusOf(problemType string) int {
	if p, ok := problemTitles[problemType]; ok {
		return p.status
	}
	return http.StatusInternalServerError
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, detailKey string, params ...map[string]any) ErrorResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	p, ok := problemTitles[problemType]
	if !ok {
		p = problemTitles[domainerrors.ProblemTypeInternal]
		problemType = domainerrors.ProblemTypeInternal
	}

	problem := problems.NewStatusProblem(p.status).
		WithType(baseURL + problemType).
		WithTitle(T(c, p.titleKey)).
		WithDetail(T(c, detailKey, params...)).
		WithInstance(c.Request.URL.Path)

	return ErrorResponse{Problem: problem}
}

// DomainErrorResponse traduz um erro de domínio; falhas de infraestrutura viram erro interno genérico
func DomainErrorResponse(c *gin.Context, err error) ErrorResponse {
	problemType := domainerrors.TypeOf(err)
	if problemType == domainerrors.ProblemTypeInternal {
		return InternalErrorResponseI18n(c)
	}
	return NewErrorResponseI18n(c, problemType, domainerrors.MessageOf(err))
}

// ValidationErrorResponseI18n cria uma resposta de erro de validação com os campos inválidos
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(c, domainerrors.ProblemTypeValidation, "error.validation.detail")
	response.Errors = validationErrors
	return response
}

// BindingErrorResponse converte o erro de binding do gin em resposta de validação.
// Corpo malformado (JSON inválido) não tem erros de campo.
func BindingErrorResponse(c *gin.Context, err error) ErrorResponse {
	fields := validation.FieldErrors(err)
	if len(fields) == 0 {
		return NewErrorResponseI18n(c, domainerrors.ProblemTypeValidation, "validation.body")
	}

	validationErrors := make([]ValidationError, 0, len(fields))
	for _, f := range fields {
		validationErrors = append(validationErrors, ValidationError{
			Field:   f.Field,
			Message: T(c, "validation."+validationMessageKey(f.Tag), map[string]any{"Field": f.Field, "Param": f.Param}),
			Tag:     f.Tag,
			Value:   f.Value,
		})
	}
	return ValidationErrorResponseI18n(c, validationErrors)
}

func validationMessageKey(tag string) string {
	switch tag {
	case "required", "email", "min", "max", "oneof", "uuid", "interest", "techstack", "role":
		return tag
	case "gt", "future":
		return "future"
	}
	return "invalid"
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, resource string) ErrorResponse {
	return NewErrorResponseI18n(c, domainerrors.ProblemTypeNotFound, "error.not_found.detail", map[string]any{"Resource": resource})
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(c, domainerrors.ProblemTypeUnauthorized, "error.unauthorized.detail")
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(c, domainerrors.ProblemTypeInternal, "error.internal.detail")
}
