package entities

import (
	"time"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
)

const (
	MaxInterests  = 5
	MaxTechStacks = 5
)

// Profile é a identidade pública de matching de um usuário
type Profile struct {
	ID         string
	UserID     string
	Nickname   string
	Bio        string
	AvatarURL  *string
	Interests  []Interest
	TechStacks []TechStack
	Role       *Role // no máximo uma; substituída via UpdateRole, nunca removida
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProposalNotification guarda os opt-ins de propostas de projeto/estudo de um perfil
type ProposalNotification struct {
	ProfileID              string
	ProjectProposalEnabled bool
	StudyProposalEnabled   bool
}

// DefaultProposalNotification retorna as preferências iniciais (tudo habilitado)
func DefaultProposalNotification(profileID string) *ProposalNotification {
	return &ProposalNotification{
		ProfileID:              profileID,
		ProjectProposalEnabled: true,
		StudyProposalEnabled:   true,
	}
}

// Accepts verifica se o perfil aceita propostas do tipo de projeto informado
func (p *ProposalNotification) Accepts(projectType ProjectType) bool {
	if projectType == ProjectTypeStudy {
		return p.StudyProposalEnabled
	}
	return p.ProjectProposalEnabled
}

func (p *Profile) HasInterest(interest Interest) bool {
	for _, i := range p.Interests {
		if i == interest {
			return true
		}
	}
	return false
}

func (p *Profile) HasTechStack(stack TechStack) bool {
	for _, s := range p.TechStacks {
		if s == stack {
			return true
		}
	}
	return false
}

// AddInterest adiciona um interesse respeitando unicidade e limite
func (p *Profile) AddInterest(interest Interest) error {
	if !interest.Valid() {
		return domainerrors.ErrInvalidVocabulary
	}
	if p.HasInterest(interest) {
		return domainerrors.ErrDuplicateAttribute
	}
	if len(p.Interests) >= MaxInterests {
		return domainerrors.ErrCardinalityExceeded
	}
	p.Interests = append(p.Interests, interest)
	return nil
}

// RemoveInterest remove um interesse; remover um valor ausente não é erro.
// Retorna true quando algo foi removido.
func (p *Profile) RemoveInterest(interest Interest) (bool, error) {
	idx := -1
	for i, v := range p.Interests {
		if v == interest {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	if len(p.Interests) == 1 {
		return false, domainerrors.ErrAttributeRequired
	}
	p.Interests = append(p.Interests[:idx], p.Interests[idx+1:]...)
	return true, nil
}

// AddTechStack adiciona uma tecnologia respeitando unicidade e limite
func (p *Profile) AddTechStack(stack TechStack) error {
	if !stack.Valid() {
		return domainerrors.ErrInvalidVocabulary
	}
	if p.HasTechStack(stack) {
		return domainerrors.ErrDuplicateAttribute
	}
	if len(p.TechStacks) >= MaxTechStacks {
		return domainerrors.ErrCardinalityExceeded
	}
	p.TechStacks = append(p.TechStacks, stack)
	return nil
}

// RemoveTechStack remove uma tecnologia; mesma semântica de RemoveInterest
func (p *Profile) RemoveTechStack(stack TechStack) (bool, error) {
	idx := -1
	for i, v := range p.TechStacks {
		if v == stack {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	if len(p.TechStacks) == 1 {
		return false, domainerrors.ErrAttributeRequired
	}
	p.TechStacks = append(p.TechStacks[:idx], p.TechStacks[idx+1:]...)
	return true, nil
}

// UpdateRole substitui a role do perfil
func (p *Profile) UpdateRole(role Role) error {
	if !role.Valid() {
		return domainerrors.ErrInvalidVocabulary
	}
	p.Role = &role
	return nil
}
