package services

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// EligibilityService decide se um usuário pode se candidatar a uma vaga
type EligibilityService struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
	appRepo  repositories.ApplicationRepository
	clock    ports.Clock
}

// NewEligibilityService cria um novo EligibilityService
func NewEligibilityService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	appRepo repositories.ApplicationRepository,
	clock ports.Clock,
) *EligibilityService {
	return &EligibilityService{
		userRepo: userRepo,
		postRepo: postRepo,
		appRepo:  appRepo,
		clock:    clock,
	}
}

// CanApply executa as verificações na ordem abaixo; a primeira falha define o motivo:
//  1. post OPEN
//  2. prazo não expirado
//  3. role existe no post com vaga restante
//  4. usuário não é o autor
//  5. nenhuma candidatura ativa para (usuário, post, role)
//
// Inelegibilidade é resultado, não erro. Post ausente, usuário encerrado
// e falhas de armazenamento são erros.
func (s *EligibilityService) CanApply(ctx context.Context, userID, postID string, role entities.Role) (entities.CanApplyResult, error) {
	result, _, err := s.check(ctx, userID, postID, role)
	return result, err
}

// check também devolve o post carregado, usado pelo ciclo de candidatura
func (s *EligibilityService) check(ctx context.Context, userID, postID string, role entities.Role) (entities.CanApplyResult, *entities.Post, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return entities.CanApplyResult{}, nil, infra(err)
	}
	if user == nil || !user.IsActive() {
		return entities.CanApplyResult{}, nil, domainerrors.ErrUserNotFound
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return entities.CanApplyResult{}, nil, infra(err)
	}
	if post == nil {
		return entities.CanApplyResult{}, nil, domainerrors.ErrPostNotFound
	}

	result, err := s.evaluate(ctx, user.ID, post, role)
	return result, post, err
}

func (s *EligibilityService) evaluate(ctx context.Context, userID string, post *entities.Post, role entities.Role) (entities.CanApplyResult, error) {
	if !post.IsOpen() {
		return entities.Ineligible(entities.ReasonPostNotApplicable), nil
	}

	if post.DeadlinePassed(s.clock.Now()) {
		return entities.Ineligible(entities.ReasonDeadlinePassed), nil
	}

	postRole, ok := post.FindRole(role)
	if !ok || postRole.Remaining <= 0 {
		return entities.Ineligible(entities.ReasonRoleUnavailable), nil
	}

	if post.IsAuthor(userID) {
		return entities.Ineligible(entities.ReasonSelfApplicationForbidden), nil
	}

	exists, err := s.appRepo.ExistsActive(ctx, userID, post.ID, role)
	if err != nil {
		return entities.CanApplyResult{}, infra(err)
	}
	if exists {
		return entities.Ineligible(entities.ReasonDuplicateApplication), nil
	}

	return entities.Eligible(), nil
}
