package postgres

import (
	"database/sql/driver"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Base gera o UUID no lado da aplicação (funciona em Postgres e SQLite)
type Base struct {
	ID string `gorm:"type:uuid;primaryKey"`
}

func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// StringArray é text[] no PostgreSQL e texto ({"A","B"}) nos demais dialetos
type StringArray pq.StringArray

func (StringArray) GormDataType() string {
	return "stringarray"
}

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src any) error {
	return (*pq.StringArray)(a).Scan(src)
}

// UserModel é o model GORM para usuários
type UserModel struct {
	Base
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string  `gorm:"type:varchar(500);not null"`
	PasswordHash *string `gorm:"type:varchar(255)"`
	Status       string  `gorm:"type:varchar(20);not null;index"`
	CreatedAt    int64   `gorm:"autoCreateTime;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime"`
	WithdrawnAt  *int64  // Soft delete explícito via status
}

func (UserModel) TableName() string {
	return "users"
}

// OAuthAccountModel vincula provedores OAuth a usuários
type OAuthAccountModel struct {
	Base
	UserID    string `gorm:"type:uuid;not null;index"`
	Provider  string `gorm:"type:varchar(20);not null;uniqueIndex:idx_oauth_provider_subject"`
	Subject   string `gorm:"type:varchar(255);not null;uniqueIndex:idx_oauth_provider_subject"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func (OAuthAccountModel) TableName() string {
	return "oauth_accounts"
}

// ProfileModel é o model GORM para perfis
type ProfileModel struct {
	Base
	UserID    string  `gorm:"type:uuid;not null;uniqueIndex"`
	Nickname  string  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Bio       string  `gorm:"type:text"`
	AvatarURL *string `gorm:"type:varchar(500)"`
	CreatedAt int64   `gorm:"autoCreateTime"`
	UpdatedAt int64   `gorm:"autoUpdateTime"`

	Interests  []ProfileInterestModel  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	TechStacks []ProfileTechStackModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Role       *ProfileRoleModel       `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

type ProfileInterestModel struct {
	Base
	ProfileID string `gorm:"type:uuid;not null;uniqueIndex:idx_profile_interest"`
	Interest  string `gorm:"type:varchar(30);not null;uniqueIndex:idx_profile_interest"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func (ProfileInterestModel) TableName() string {
	return "profile_interests"
}

type ProfileTechStackModel struct {
	Base
	ProfileID string `gorm:"type:uuid;not null;uniqueIndex:idx_profile_tech_stack"`
	TechStack string `gorm:"type:varchar(30);not null;uniqueIndex:idx_profile_tech_stack"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func (ProfileTechStackModel) TableName() string {
	return "profile_tech_stacks"
}

// ProfileRoleModel tem no máximo uma linha por perfil
type ProfileRoleModel struct {
	Base
	ProfileID string `gorm:"type:uuid;not null;uniqueIndex"`
	Role      string `gorm:"type:varchar(30);not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (ProfileRoleModel) TableName() string {
	return "profile_roles"
}

// ProposalNotificationModel guarda os opt-ins de proposta por perfil
type ProposalNotificationModel struct {
	ProfileID              string `gorm:"type:uuid;primaryKey"`
	ProjectProposalEnabled bool   `gorm:"not null"`
	StudyProposalEnabled   bool   `gorm:"not null"`
	UpdatedAt              int64  `gorm:"autoUpdateTime"`
}

func (ProposalNotificationModel) TableName() string {
	return "proposal_notifications"
}

// PostModel é o model GORM para posts
type PostModel struct {
	Base
	AuthorID     string                      `gorm:"type:uuid;not null;index"`
	ProjectType  string                      `gorm:"type:varchar(20);not null;index"`
	Status       string                      `gorm:"type:varchar(20);not null;index"`
	ActivityMode string                      `gorm:"type:varchar(20);not null"`
	Duration     string                      `gorm:"type:varchar(30);not null"`
	DeadlineAt   int64                       `gorm:"not null;index"`
	Title        string                      `gorm:"type:varchar(200);not null"`
	Content      string                      `gorm:"type:text"`
	Interests    datatypes.JSONSlice[string] `gorm:"not null"`
	TechStacks   StringArray
	Version      int   `gorm:"not null"`
	CreatedAt    int64 `gorm:"autoCreateTime;index"`
	UpdatedAt    int64 `gorm:"autoUpdateTime"`

	Roles []PostRoleModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostModel) TableName() string {
	return "posts"
}

// PostRoleModel é a vaga de um post; Remaining é alterado apenas por UPDATE condicional
type PostRoleModel struct {
	Base
	PostID    string `gorm:"type:uuid;not null;uniqueIndex:idx_post_role"`
	Role      string `gorm:"type:varchar(30);not null;uniqueIndex:idx_post_role"`
	Capacity  int    `gorm:"not null"`
	Remaining int    `gorm:"not null"`
	Version   int    `gorm:"not null"`
}

func (PostRoleModel) TableName() string {
	return "post_roles"
}

// ApplicationModel é o model GORM para candidaturas.
// O índice parcial garante uma candidatura ativa por (post, role, candidato).
type ApplicationModel struct {
	Base
	PostID      string `gorm:"type:uuid;not null;uniqueIndex:idx_active_application,where:status <> 'WITHDRAWN'"`
	Role        string `gorm:"type:varchar(30);not null;uniqueIndex:idx_active_application,where:status <> 'WITHDRAWN'"`
	ApplicantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_active_application,where:status <> 'WITHDRAWN'"`
	Message     string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime"`
	UpdatedAt   int64  `gorm:"autoUpdateTime"`
	DecidedAt   *int64
}

func (ApplicationModel) TableName() string {
	return "applications"
}

type BookmarkModel struct {
	Base
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_user_post"`
	PostID    string `gorm:"type:uuid;not null;uniqueIndex:idx_user_post;index"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func (BookmarkModel) TableName() string {
	return "bookmarks"
}

type NotificationModel struct {
	Base
	ReceiverID   string  `gorm:"type:uuid;not null;index:idx_notification_triple"`
	Type         string  `gorm:"type:varchar(40);not null;index:idx_notification_triple"`
	TargetPostID *string `gorm:"type:uuid;index:idx_notification_triple"`
	Message      string  `gorm:"type:text"`
	IsRead       bool    `gorm:"not null"`
	CreatedAt    int64   `gorm:"autoCreateTime;index"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

type ChatRoomModel struct {
	Base
	PostID      string `gorm:"type:uuid;not null;uniqueIndex:idx_chat_room_post_initiator"`
	InitiatorID string `gorm:"type:uuid;not null;uniqueIndex:idx_chat_room_post_initiator;index"`
	OwnerID     string `gorm:"type:uuid;not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime"`
}

func (ChatRoomModel) TableName() string {
	return "chat_rooms"
}

type ChatMessageModel struct {
	Base
	RoomID    string `gorm:"type:uuid;not null;index:idx_chat_message_room_time"`
	SenderID  string `gorm:"type:uuid;not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index:idx_chat_message_room_time"`
}

func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// PostSearchDocumentModel é o índice de busca {id, título, descrição}
type PostSearchDocumentModel struct {
	PostID      string `gorm:"type:uuid;primaryKey"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);not null;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime"`
}

func (PostSearchDocumentModel) TableName() string {
	return "post_search_documents"
}

// AllModels lista os models migrados por AutoMigrate
func AllModels() []any {
	return []any{
		&UserModel{},
		&OAuthAccountModel{},
		&ProfileModel{},
		&ProfileInterestModel{},
		&ProfileTechStackModel{},
		&ProfileRoleModel{},
		&ProposalNotificationModel{},
		&PostModel{},
		&PostRoleModel{},
		&ApplicationModel{},
		&BookmarkModel{},
		&NotificationModel{},
		&ChatRoomModel{},
		&ChatMessageModel{},
		&PostSearchDocumentModel{},
	}
}

// AutoMigrate cria/atualiza o schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
