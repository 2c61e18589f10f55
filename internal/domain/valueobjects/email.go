package valueobjects

import (
	"regexp"
	"strings"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email é um value object que garante que emails sejam sempre válidos e normalizados
type Email struct {
	value string
}

// NewEmail cria um novo Email validado (minúsculo, sem espaços)
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if len(email) < 3 || len(email) > 254 || !emailPattern.MatchString(email) {
		return Email{}, domainerrors.ErrInvalidEmail
	}

	return Email{value: email}, nil
}

// MustEmail é usado em fixtures; entra em pânico com email inválido
func MustEmail(email string) Email {
	e, err := NewEmail(email)
	if err != nil {
		panic(err)
	}
	return e
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// Domain retorna a parte após o @
func (e Email) Domain() string {
	if idx := strings.LastIndex(e.value, "@"); idx != -1 {
		return e.value[idx+1:]
	}
	return ""
}
