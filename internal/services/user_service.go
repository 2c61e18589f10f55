package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários e autenticação
type UserService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	clock    ports.Clock
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	clock ports.Clock,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		clock:    clock,
		logger:   logger,
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// AuthResult é o resultado de um login bem sucedido
type AuthResult struct {
	User        *entities.User
	AccessToken string
	ExpiresAt   time.Time
}

// Register cria um usuário com senha e já emite o token de acesso
func (s *UserService) Register(ctx context.Context, input CreateUserInput) (*AuthResult, error) {
	s.logger.Info("creating user", "email", input.Email)

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, infra(err)
	}
	if existing != nil {
		return nil, domainerrors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, infra(err)
	}

	now := s.clock.Now()
	user := &entities.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Status:       entities.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, &domainerrors.DomainError{
			Type:    domainerrors.ProblemTypeValidation,
			Message: "error.validation.detail",
			Err:     err,
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, infra(err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return s.issue(user)
}

// Login autentica com e-mail e senha
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, infra(err)
	}
	if user == nil || !user.IsActive() || !user.HasPassword() {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// LoginWithOAuth resolve a identidade externa para um usuário local.
// A conta é vinculada pelo e-mail quando já existe, senão um novo usuário é criado.
func (s *UserService) LoginWithOAuth(ctx context.Context, identity ports.OAuthIdentity) (*AuthResult, error) {
	provider := entities.OAuthProvider(identity.Provider)

	var user *entities.User
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.userRepo.FindByOAuth(txCtx, provider, identity.Subject)
		if err != nil {
			return infra(err)
		}
		if user != nil {
			return nil
		}

		email, err := valueobjects.NewEmail(identity.Email)
		if err != nil {
			return err
		}

		user, err = s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return infra(err)
		}
		if user == nil {
			name := strings.TrimSpace(identity.Name)
			if len(name) < 2 {
				name = strings.Split(email.String(), "@")[0]
			}
			now := s.clock.Now()
			user = &entities.User{
				Email:     email,
				Name:      name,
				Status:    entities.UserStatusActive,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.userRepo.Create(txCtx, user); err != nil {
				return infra(err)
			}
		}

		return infra(s.userRepo.LinkOAuth(txCtx, &entities.OAuthAccount{
			UserID:   user.ID,
			Provider: provider,
			Subject:  identity.Subject,
		}))
	})
	if err != nil {
		return nil, err
	}

	if !user.IsActive() {
		return nil, domainerrors.ErrInvalidCredentials
	}

	s.logger.Info("oauth login", "user_id", user.ID, "provider", identity.Provider)
	return s.issue(user)
}

// Authenticate valida o token e retorna o usuário ativo correspondente
func (s *UserService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	principal, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, infra(err)
	}
	if user == nil || !user.IsActive() {
		return nil, domainerrors.ErrUnauthorized
	}
	return user, nil
}

// GetUser busca um usuário ativo por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, infra(err)
	}
	if user == nil || !user.IsActive() {
		return nil, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários com filtros; sem filtro de status apenas ativos são retornados
func (s *UserService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	if filters.Status == nil {
		active := entities.UserStatusActive
		filters.Status = &active
	}

	users, err := s.userRepo.List(ctx, filters)
	if err != nil {
		return nil, infra(err)
	}
	return users, nil
}

// Withdraw encerra a conta (soft delete)
func (s *UserService) Withdraw(ctx context.Context, id string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.Withdraw(s.clock.Now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		return infra(err)
	}

	s.logger.Info("user withdrawn", "user_id", user.ID)
	return nil
}

func (s *UserService) issue(user *entities.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(ports.Principal{
		UserID: user.ID,
		Email:  user.Email.String(),
		Name:   user.Name,
	})
	if err != nil {
		return nil, infra(err)
	}
	return &AuthResult{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}
