package entities

import domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"

// IneligibilityReason explica por que uma candidatura não é permitida
type IneligibilityReason string

const (
	ReasonNone                     IneligibilityReason = ""
	ReasonPostNotApplicable        IneligibilityReason = "POST_NOT_APPLICABLE"
	ReasonDeadlinePassed           IneligibilityReason = "DEADLINE_PASSED"
	ReasonRoleUnavailable          IneligibilityReason = "ROLE_UNAVAILABLE"
	ReasonSelfApplicationForbidden IneligibilityReason = "SELF_APPLICATION_FORBIDDEN"
	ReasonDuplicateApplication     IneligibilityReason = "DUPLICATE_APPLICATION"
)

// Err retorna o erro de domínio correspondente ao motivo
func (r IneligibilityReason) Err() error {
	switch r {
	case ReasonPostNotApplicable:
		return domainerrors.ErrPostNotApplicable
	case ReasonDeadlinePassed:
		return domainerrors.ErrDeadlinePassed
	case ReasonRoleUnavailable:
		return domainerrors.ErrRoleUnavailable
	case ReasonSelfApplicationForbidden:
		return domainerrors.ErrSelfApplicationForbidden
	case ReasonDuplicateApplication:
		return domainerrors.ErrDuplicateApplication
	}
	return nil
}

// CanApplyResult é o resultado tipado da verificação de elegibilidade
type CanApplyResult struct {
	CanApply bool
	Reason   IneligibilityReason
}

// Eligible retorna um resultado positivo
func Eligible() CanApplyResult {
	return CanApplyResult{CanApply: true}
}

// Ineligible retorna um resultado negativo com o motivo
func Ineligible(reason IneligibilityReason) CanApplyResult {
	return CanApplyResult{CanApply: false, Reason: reason}
}
