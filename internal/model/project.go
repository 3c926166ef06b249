package model

import "time"

const (
	ProjectTypeBackEnd  = "back-end"
	ProjectTypeFrontEnd = "front-end"
	ProjectTypeIOS      = "ios"
	ProjectTypeAndroid  = "android"
)

const (
	ContributorRoleMember = 0
	ContributorRoleAuthor = 1
)

type Project struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	AuthorID    uint64    `gorm:"not null;index" json:"author_id"`
	CreatedAt   time.Time `json:"created_time"`
	UpdatedAt   time.Time `json:"-"`
}

// Contributor 项目成员关系，(project_id, user_id) 唯一
type Contributor struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ProjectID uint64    `gorm:"not null;index;uniqueIndex:uk_project_user" json:"project_id"`
	UserID    uint64    `gorm:"not null;index;uniqueIndex:uk_project_user" json:"user_id"`
	Role      int       `gorm:"not null;default:0" json:"role"` // 0=member, 1=author
	CreatedAt time.Time `json:"created_time"`
	UpdatedAt time.Time `json:"-"`
}

func ValidProjectType(t string) bool {
	switch t {
	case ProjectTypeBackEnd, ProjectTypeFrontEnd, ProjectTypeIOS, ProjectTypeAndroid:
		return true
	}
	return false
}
