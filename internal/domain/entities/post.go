package entities

import (
	"time"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
)

// ProjectType distingue projetos de grupos de estudo
type ProjectType string

const (
	ProjectTypeProject ProjectType = "PROJECT"
	ProjectTypeStudy   ProjectType = "STUDY"
)

func (t ProjectType) Valid() bool {
	return t == ProjectTypeProject || t == ProjectTypeStudy
}

// PostStatus representa o estado de publicação de um post
type PostStatus string

const (
	PostStatusDraft  PostStatus = "DRAFT"
	PostStatusOpen   PostStatus = "OPEN"
	PostStatusClosed PostStatus = "CLOSED"
)

func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusOpen || s == PostStatusClosed
}

// ActivityMode indica como o time se reúne
type ActivityMode string

const (
	ActivityModeOnline  ActivityMode = "ONLINE"
	ActivityModeOffline ActivityMode = "OFFLINE"
	ActivityModeHybrid  ActivityMode = "HYBRID"
)

func (m ActivityMode) Valid() bool {
	return m == ActivityModeOnline || m == ActivityModeOffline || m == ActivityModeHybrid
}

// Duration é o período previsto de atividade
type Duration string

const (
	DurationOneMonth     Duration = "ONE_MONTH"
	DurationTwoMonths    Duration = "TWO_MONTHS"
	DurationThreeMonths  Duration = "THREE_MONTHS"
	DurationFourToSix    Duration = "FOUR_TO_SIX_MONTHS"
	DurationLongTerm     Duration = "LONG_TERM"
	DurationUndetermined Duration = "UNDECIDED"
)

func (d Duration) Valid() bool {
	switch d {
	case DurationOneMonth, DurationTwoMonths, DurationThreeMonths,
		DurationFourToSix, DurationLongTerm, DurationUndetermined:
		return true
	}
	return false
}

// PostRole é uma vaga aberta em um post
type PostRole struct {
	Role      Role
	Capacity  int
	Remaining int
}

// Accepted retorna quantos candidatos já ocupam a vaga
func (r PostRole) Accepted() int {
	return r.Capacity - r.Remaining
}

// Post é um anúncio de recrutamento
type Post struct {
	ID           string
	AuthorID     string
	ProjectType  ProjectType
	Status       PostStatus
	ActivityMode ActivityMode
	Duration     Duration
	DeadlineAt   time.Time
	Title        string
	Content      string
	Interests    []Interest
	TechStacks   []TechStack
	Roles        []PostRole
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAuthor verifica se o usuário é o autor do post
func (p *Post) IsAuthor(userID string) bool {
	return p.AuthorID == userID
}

// IsOpen verifica se o post aceita candidaturas
func (p *Post) IsOpen() bool {
	return p.Status == PostStatusOpen
}

// DeadlinePassed verifica se o prazo expirou no instante informado
func (p *Post) DeadlinePassed(now time.Time) bool {
	return !now.Before(p.DeadlineAt)
}

// FindRole retorna a vaga correspondente à role
func (p *Post) FindRole(role Role) (PostRole, bool) {
	for _, r := range p.Roles {
		if r.Role == role {
			return r, true
		}
	}
	return PostRole{}, false
}

// Publish move o post de DRAFT para OPEN
func (p *Post) Publish() error {
	if p.Status != PostStatusDraft {
		return domainerrors.ErrInvalidStateTransition
	}
	p.Status = PostStatusOpen
	return nil
}

// Close encerra o recrutamento
func (p *Post) Close() error {
	if p.Status != PostStatusOpen {
		return domainerrors.ErrInvalidStateTransition
	}
	p.Status = PostStatusClosed
	return nil
}

// ReplaceRoles troca as vagas preservando as posições já ocupadas
func (p *Post) ReplaceRoles(capacities map[Role]int) error {
	roles := make([]PostRole, 0, len(capacities))
	for _, role := range AllRoles() {
		capacity, ok := capacities[role]
		if !ok {
			continue
		}
		accepted := 0
		if current, found := p.FindRole(role); found {
			accepted = current.Accepted()
		}
		if capacity < accepted {
			return domainerrors.ErrCapacityBelowAccepted
		}
		roles = append(roles, PostRole{Role: role, Capacity: capacity, Remaining: capacity - accepted})
	}
	for _, current := range p.Roles {
		if _, kept := capacities[current.Role]; !kept && current.Accepted() > 0 {
			return domainerrors.ErrCapacityBelowAccepted
		}
	}
	p.Roles = roles
	return nil
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	if p.Title == "" || p.AuthorID == "" {
		return domainerrors.ErrInvalidPost
	}
	if !p.ProjectType.Valid() || !p.Status.Valid() || !p.ActivityMode.Valid() || !p.Duration.Valid() {
		return domainerrors.ErrInvalidVocabulary
	}
	if len(p.Roles) == 0 {
		return domainerrors.ErrInvalidPost
	}
	seen := make(map[Role]bool, len(p.Roles))
	for _, r := range p.Roles {
		if !r.Role.Valid() {
			return domainerrors.ErrInvalidVocabulary
		}
		if seen[r.Role] || r.Capacity < 1 || r.Remaining < 0 || r.Remaining > r.Capacity {
			return domainerrors.ErrInvalidPost
		}
		seen[r.Role] = true
	}
	for _, i := range p.Interests {
		if !i.Valid() {
			return domainerrors.ErrInvalidVocabulary
		}
	}
	for _, t := range p.TechStacks {
		if !t.Valid() {
			return domainerrors.ErrInvalidVocabulary
		}
	}
	return nil
}
