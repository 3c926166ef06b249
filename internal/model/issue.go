package model

import "time"

const (
	IssueTagBug     = "bug"
	IssueTagFeature = "feature"
	IssueTagTask    = "task"
)

const (
	IssuePriorityLow    = "low"
	IssuePriorityMedium = "medium"
	IssuePriorityHigh   = "high"
)

const (
	IssueStatusTodo       = "to-do"
	IssueStatusInProgress = "in-progress"
	IssueStatusFinished   = "finished"
)

type Issue struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	ProjectID   uint64    `gorm:"not null;index:idx_project_time,priority:1" json:"project_id"`
	AuthorID    uint64    `gorm:"not null;index" json:"author_id"`
	AssigneeID  *uint64   `gorm:"index" json:"assignee_id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Tag         string    `gorm:"size:20;not null" json:"tag"`
	Priority    string    `gorm:"size:20;not null" json:"priority"`
	Status      string    `gorm:"size:20;not null;default:'to-do'" json:"status"`
	CreatedAt   time.Time `gorm:"index:idx_project_time,priority:2,sort:desc" json:"created_time"`
	UpdatedAt   time.Time `json:"-"`
}

func ValidIssueTag(t string) bool {
	switch t {
	case IssueTagBug, IssueTagFeature, IssueTagTask:
		return true
	}
	return false
}

func ValidIssuePriority(p string) bool {
	switch p {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh:
		return true
	}
	return false
}

// ValidIssueStatus 状态枚举校验；状态之间的流转不做限制
func ValidIssueStatus(s string) bool {
	switch s {
	case IssueStatusTodo, IssueStatusInProgress, IssueStatusFinished:
		return true
	}
	return false
}
