package domain

import "time"

// NotificationType enumerates notification kinds
type NotificationType string

const (
	NotificationAnswer   NotificationType = "answer"
	NotificationUpvote   NotificationType = "upvote"
	NotificationAccepted NotificationType = "accepted"
	NotificationReply    NotificationType = "reply"
	NotificationResolved NotificationType = "resolved"
	NotificationWelcome  NotificationType = "welcome"
)

// Notification is a message addressed to one user
type Notification struct {
	ID         uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     uint64           `gorm:"column:user_id;index;not null" json:"user_id"`
	User       *Profile         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Message    string           `gorm:"column:message;type:varchar(500);not null" json:"message"`
	Type       NotificationType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Seen       bool             `gorm:"column:seen;default:false;index" json:"seen"`
	QuestionID *uint64          `gorm:"column:question_id;index" json:"question_id,omitempty"`
	Question   *Question        `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	AnswerID   *uint64          `gorm:"column:answer_id;index" json:"answer_id,omitempty"`
	Answer     *Answer          `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationEvent is an action that may produce a notification.
// ActorID is zero for system events.
type NotificationEvent struct {
	Type        NotificationType
	RecipientID uint64
	ActorID     uint64
	Message     string
	QuestionID  *uint64
	AnswerID    *uint64
}

// NotificationList is a page of notifications with the unread total
type NotificationList struct {
	Items       []Notification `json:"items"`
	Total       int64          `json:"total"`
	UnreadCount int64          `json:"unread_count"`
}

// PushMessage is the websocket payload for a new notification
type PushMessage struct {
	Type         string        `json:"type"`
	Notification *Notification `json:"notification"`
}
