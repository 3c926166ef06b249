package service

import (
	"context"

	"softdesk/internal/model"
)

// 仓储接口按消费方声明，mysql/redis 包里的实现由 cmd/api 注入

type UserRepo interface {
	Create(user *model.User) error
	FindByID(id uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	List(offset, limit int) ([]model.User, error)
	Save(user *model.User) error
	Delete(id uint64) error
}

type SessionRepo interface {
	AddUserToken(usrID uint64, token string) error
	DeleteUserToken(usrID uint64) error
}

type ProjectRepo interface {
	Create(p *model.Project) (*model.Project, error)
	FindByID(id uint64) (*model.Project, error)
	ListForUser(userID uint64, offset, limit int) ([]model.Project, error)
	Save(p *model.Project) error
	DeleteCascade(id uint64) error
}

type ContributorRepo interface {
	Add(member *model.Contributor) error
	Remove(projectID, userID uint64) error
	IsContributor(projectID, userID uint64) (bool, error)
	ListByProject(projectID uint64) ([]model.Contributor, error)
}

type IssueRepo interface {
	Create(issue *model.Issue, event *model.ActivityOutbox) error
	FindByID(id uint64) (*model.Issue, error)
	ListByProject(projectID uint64, offset, limit int) ([]model.Issue, error)
	Save(issue *model.Issue, event *model.ActivityOutbox) error
	DeleteCascade(id uint64, event *model.ActivityOutbox) error
}

type CommentRepo interface {
	Create(comment *model.Comment, event *model.ActivityOutbox) error
	FindByID(id uint64) (*model.Comment, error)
	ListByIssue(issueID uint64, offset, limit int) ([]model.Comment, error)
	Save(comment *model.Comment) error
	Delete(id uint64) error
}

type OutboxRepo interface {
	ListPending(ctx context.Context, limit int) ([]model.ActivityOutbox, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkRetry(ctx context.Context, id uint64, maxRetry int) error
}

// normalizePage 页码/页大小兜底，size 上限 50
func normalizePage(page, size int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return (page - 1) * size, size
}
