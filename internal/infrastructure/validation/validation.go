package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// FieldError descreve uma falha de validação de um campo
type FieldError struct {
	Field string
	Tag   string
	Param string
	Value string
}

// vocabularies mapeia tags customizadas para os vocabulários fechados do domínio
var vocabularies = map[string]func(string) bool{
	"interest":     func(v string) bool { return entities.Interest(v).Valid() },
	"techstack":    func(v string) bool { return entities.TechStack(v).Valid() },
	"role":         func(v string) bool { return entities.Role(v).Valid() },
	"projecttype":  func(v string) bool { return entities.ProjectType(v).Valid() },
	"activitymode": func(v string) bool { return entities.ActivityMode(v).Valid() },
	"duration":     func(v string) bool { return entities.Duration(v).Valid() },
	"poststatus":   func(v string) bool { return entities.PostStatus(v).Valid() },
	"appstatus":    func(v string) bool { return entities.ApplicationStatus(v).Valid() },
	"decision":     func(v string) bool { return entities.Decision(v).Valid() },
}

// Register adiciona as tags de vocabulário e usa o nome JSON nos erros
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	for tag, valid := range vocabularies {
		check := valid
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			return check(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}

	return nil
}

// RegisterGin registra as validações no engine do binding do gin
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return Register(v)
}

// FieldErrors extrai os erros de campo de um erro de binding
func FieldErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field: fieldPath(fe),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fmt.Sprintf("%v", fe.Value()),
		})
	}
	return fields
}

// fieldPath remove o nome da struct raiz do namespace (CreatePostRequest.roles[0].role -> roles[0].role)
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}
	return fe.Field()
}
