package entities

import (
	"errors"
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/valueobjects"
)

// UserStatus representa o ciclo de vida de uma conta
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusWithdrawn UserStatus = "WITHDRAWN"
)

// OAuthProvider identifica um provedor de login social
type OAuthProvider string

const (
	OAuthProviderGoogle OAuthProvider = "google"
	OAuthProviderGitHub OAuthProvider = "github"
	OAuthProviderKakao  OAuthProvider = "kakao"
)

// User representa um usuário do sistema
type User struct {
	ID           string
	Email        valueobjects.Email
	Name         string
	PasswordHash string // vazio para contas criadas só via OAuth
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	WithdrawnAt  *time.Time
}

// OAuthAccount vincula uma identidade externa a um usuário
type OAuthAccount struct {
	ID        string
	UserID    string
	Provider  OAuthProvider
	Subject   string
	CreatedAt time.Time
}

// IsActive verifica se a conta não foi encerrada
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasPassword indica se a conta aceita login local
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Withdraw marca a conta como encerrada (soft delete)
func (u *User) Withdraw(now time.Time) {
	u.Status = UserStatusWithdrawn
	u.WithdrawnAt = &now
	u.UpdatedAt = now
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if len(u.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	if u.Status != UserStatusActive && u.Status != UserStatusWithdrawn {
		return errors.New("invalid status")
	}

	return nil
}
