package model

import "time"

type Comment struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UUID        string    `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	IssueID     uint64    `gorm:"not null;index" json:"issue_id"`
	AuthorID    uint64    `gorm:"not null;index" json:"author_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_time"`
	UpdatedAt   time.Time `json:"-"`
}
