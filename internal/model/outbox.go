package model

import "time"

const (
	EventIssueCreated       = "issue_created"
	EventIssueStatusChanged = "issue_status_changed"
	EventIssueDeleted       = "issue_deleted"
	EventCommentCreated     = "comment_created"
)

const (
	OutboxPending = 0
	OutboxSent    = 1
	OutboxFailed  = 2
)

// ActivityOutbox 活动事件记录表，与业务写入同事务落库，异步投递
type ActivityOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	ProjectID uint64 `gorm:"not null;index"`
	ActorID   uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ActivityOutbox) TableName() string { return "activity_outbox" }
