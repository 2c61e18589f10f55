package events

import "time"

// Type identifica um evento publicado na fronteira de saída
type Type string

const (
	ApplicationSubmitted Type = "application.submitted"
	ApplicationAccepted  Type = "application.accepted"
	ApplicationRejected  Type = "application.rejected"
	ApplicationWithdrawn Type = "application.withdrawn"
	PostIndexed          Type = "post.indexed"
	PostClosed           Type = "post.closed"
)

// Event é o envelope que trafega pelo barramento (Redis Streams ou memória).
// As tags mapstructure permitem decodificar os valores planos de um stream.
type Event struct {
	ID            string    `mapstructure:"id" json:"id"`
	Type          Type      `mapstructure:"type" json:"type"`
	PostID        string    `mapstructure:"post_id" json:"post_id"`
	ApplicationID string    `mapstructure:"application_id" json:"application_id,omitempty"`
	ApplicantID   string    `mapstructure:"applicant_id" json:"applicant_id,omitempty"`
	AuthorID      string    `mapstructure:"author_id" json:"author_id,omitempty"`
	Role          string    `mapstructure:"role" json:"role,omitempty"`
	OccurredAt    time.Time `mapstructure:"occurred_at" json:"occurred_at"`
}
