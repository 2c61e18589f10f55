package entities

import "time"

// NotificationType classifica os alertas enviados aos usuários
type NotificationType string

const (
	NotificationApplicationReceived  NotificationType = "APPLICATION_RECEIVED"
	NotificationApplicationAccepted  NotificationType = "APPLICATION_ACCEPTED"
	NotificationApplicationRejected  NotificationType = "APPLICATION_REJECTED"
	NotificationApplicationWithdrawn NotificationType = "APPLICATION_WITHDRAWN"
	NotificationChatMessage          NotificationType = "CHAT_MESSAGE"
	NotificationProjectProposal      NotificationType = "PROJECT_PROPOSAL"
	NotificationStudyProposal        NotificationType = "STUDY_PROPOSAL"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationApplicationReceived, NotificationApplicationAccepted,
		NotificationApplicationRejected, NotificationApplicationWithdrawn,
		NotificationChatMessage, NotificationProjectProposal, NotificationStudyProposal:
		return true
	}
	return false
}

// ProposalNotificationType retorna o tipo de proposta para o tipo de projeto
func ProposalNotificationType(projectType ProjectType) NotificationType {
	if projectType == ProjectTypeStudy {
		return NotificationStudyProposal
	}
	return NotificationProjectProposal
}

// Notification é um alerta endereçado a um usuário
type Notification struct {
	ID           string
	ReceiverID   string
	Type         NotificationType
	Message      string
	TargetPostID *string
	IsRead       bool
	CreatedAt    time.Time
}

// NotificationPayload é o que o núcleo entrega ao colaborador de notificações
type NotificationPayload struct {
	ReceiverID   string
	Type         NotificationType
	Message      string
	TargetPostID *string
}
