package entities

import (
	"time"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
)

// ApplicationStatus representa o estado de uma candidatura
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusSubmitted, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// Decision é a resposta do autor a uma candidatura
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
)

func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// Target retorna o estado resultante da decisão
func (d Decision) Target() ApplicationStatus {
	if d == DecisionAccept {
		return ApplicationStatusAccepted
	}
	return ApplicationStatusRejected
}

// transitions lista as transições permitidas a partir de cada estado
var transitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusSubmitted: {ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusAccepted:  {ApplicationStatusWithdrawn},
}

// CanTransition verifica se from -> to é permitido
func CanTransition(from, to ApplicationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Application é o pedido de um usuário para ocupar uma vaga de um post
type Application struct {
	ID          string
	PostID      string
	Role        Role
	ApplicantID string
	Message     string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DecidedAt   *time.Time
}

// IsActive indica se a candidatura ainda conta para unicidade (não retirada)
func (a *Application) IsActive() bool {
	return a.Status != ApplicationStatusWithdrawn
}

// TransitionTo aplica a transição validando a máquina de estados
func (a *Application) TransitionTo(to ApplicationStatus, now time.Time) error {
	if !CanTransition(a.Status, to) {
		return domainerrors.ErrInvalidStateTransition
	}
	a.Status = to
	a.UpdatedAt = now
	if to == ApplicationStatusAccepted || to == ApplicationStatusRejected {
		a.DecidedAt = &now
	}
	return nil
}
