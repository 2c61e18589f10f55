package errors

import "errors"

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional.
// Message é um message ID para i18n (internal/infrastructure/i18n/locales/*.json).
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is compara pelo message ID, assim erros embrulhados por Infrastructure casam com o sentinel
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

func newError(problemType, key string) *DomainError {
	return &DomainError{Type: problemType, Message: key}
}

// Usuários e autenticação
var (
	ErrUserNotFound       = newError(ProblemTypeNotFound, "error.user_not_found")
	ErrEmailAlreadyExists = newError(ProblemTypeConflict, "error.email_already_exists")
	ErrInvalidCredentials = newError(ProblemTypeUnauthorized, "error.invalid_credentials")
	ErrUnauthorized       = newError(ProblemTypeUnauthorized, "error.unauthorized")
	ErrForbidden          = newError(ProblemTypeForbidden, "error.forbidden")
	ErrInvalidEmail       = newError(ProblemTypeValidation, "error.invalid_email")

	ErrOAuthProviderNotFound = newError(ProblemTypeNotFound, "error.oauth_provider_not_found")
	ErrOAuthFailed           = newError(ProblemTypeUnauthorized, "error.oauth_failed")
)

// Perfil e atributos
var (
	ErrProfileNotFound      = newError(ProblemTypeNotFound, "error.profile_not_found")
	ErrProfileAlreadyExists = newError(ProblemTypeConflict, "error.profile_already_exists")
	ErrNicknameTaken        = newError(ProblemTypeConflict, "error.nickname_taken")
	ErrDuplicateAttribute   = newError(ProblemTypeConflict, "error.duplicate_attribute")
	ErrCardinalityExceeded  = newError(ProblemTypeConflict, "error.cardinality_exceeded")
	ErrAttributeRequired    = newError(ProblemTypeConflict, "error.attribute_required")
	ErrInvalidVocabulary    = newError(ProblemTypeValidation, "error.invalid_vocabulary")
	ErrInvalidAvatar        = newError(ProblemTypeValidation, "error.invalid_avatar")
)

// Posts, elegibilidade e candidaturas
var (
	ErrPostNotFound             = newError(ProblemTypeNotFound, "error.post_not_found")
	ErrPostNotApplicable        = newError(ProblemTypeConflict, "error.post_not_applicable")
	ErrDeadlinePassed           = newError(ProblemTypeConflict, "error.deadline_passed")
	ErrRoleUnavailable          = newError(ProblemTypeConflict, "error.role_unavailable")
	ErrSelfApplicationForbidden = newError(ProblemTypeForbidden, "error.self_application_forbidden")
	ErrDuplicateApplication     = newError(ProblemTypeConflict, "error.duplicate_application")
	ErrApplicationNotFound      = newError(ProblemTypeNotFound, "error.application_not_found")
	ErrInvalidStateTransition   = newError(ProblemTypeConflict, "error.invalid_state_transition")
	ErrCapacityBelowAccepted    = newError(ProblemTypeConflict, "error.capacity_below_accepted")
	ErrInvalidPost              = newError(ProblemTypeValidation, "error.invalid_post")
	ErrConcurrentUpdate         = newError(ProblemTypeConflict, "error.concurrent_update")
)

// Notificações e chat
var (
	ErrNotificationNotFound = newError(ProblemTypeNotFound, "error.notification_not_found")
	ErrProposalDisabled     = newError(ProblemTypeConflict, "error.proposal_disabled")
	ErrChatRoomNotFound     = newError(ProblemTypeNotFound, "error.chat_room_not_found")
	ErrNotParticipant       = newError(ProblemTypeForbidden, "error.not_participant")
	ErrInvalidChatTarget    = newError(ProblemTypeValidation, "error.invalid_chat_target")
	ErrEmptyMessage         = newError(ProblemTypeValidation, "error.empty_message")
)

// ErrStorageUnavailable indica que um colaborador externo (banco, S3, broker) falhou
var ErrStorageUnavailable = newError(ProblemTypeInternal, "error.internal")

// Infrastructure embrulha uma falha de infraestrutura para que seja logada e exposta como erro genérico
func Infrastructure(err error) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return err
	}
	return &DomainError{Type: ProblemTypeInternal, Message: ErrStorageUnavailable.Message, Err: err}
}

// TypeOf retorna o problem type de um erro; erros desconhecidos são tratados como internos
func TypeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type
	}
	return ProblemTypeInternal
}

// MessageOf retorna o message ID de um erro
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ErrStorageUnavailable.Message
}

// IsInfrastructure indica se o erro deve ser logado como falha de infraestrutura
func IsInfrastructure(err error) bool {
	return TypeOf(err) == ProblemTypeInternal
}
