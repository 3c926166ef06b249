package service

import (
	"errors"
	"fmt"

	"softdesk/internal/model"
	"softdesk/internal/pkg"

	"gorm.io/gorm"
)

// Notifier 指派通知，实现见 notifier.go；nil 时不通知
type Notifier interface {
	NotifyAssignment(assignee *model.User, project *model.Project, issue *model.Issue)
}

type IssueService struct {
	repo     IssueRepo
	projects ProjectRepo
	members  ContributorRepo
	users    UserRepo
	notifier Notifier
}

func NewIssueService(repo IssueRepo, projects ProjectRepo, members ContributorRepo, users UserRepo, notifier Notifier) *IssueService {
	return &IssueService{repo: repo, projects: projects, members: members, users: users, notifier: notifier}
}

type IssueInput struct {
	Title            string
	Description      string
	Tag              string
	Priority         string
	AssigneeUsername string
}

// IssueUpdate nil 字段表示不修改；AssigneeUsername 传空串表示取消指派
type IssueUpdate struct {
	Title            *string
	Description      *string
	Tag              *string
	Priority         *string
	Status           *string
	AssigneeUsername *string
}

func (s *IssueService) guardProject(actorID, projectID uint64) (*model.Project, error) {
	project, err := s.projects.FindByID(projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: project not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	ok, err := s.members.IsContributor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: you are not a contributor of this project", pkg.ErrPermission)
	}
	return project, nil
}

// resolveAssignee 被指派人必须是项目当前成员
func (s *IssueService) resolveAssignee(projectID uint64, username string) (*model.User, error) {
	user, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: assignee %q does not exist", pkg.ErrValidation, username)
	}
	if err != nil {
		return nil, err
	}
	ok, err := s.members.IsContributor(projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: assignee must be a contributor of the project", pkg.ErrValidation)
	}
	return user, nil
}

func (s *IssueService) CreateIssue(actorID, projectID uint64, in IssueInput) (*model.Issue, error) {
	project, err := s.guardProject(actorID, projectID)
	if err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, fmt.Errorf("%w: title required", pkg.ErrValidation)
	}
	if !model.ValidIssueTag(in.Tag) {
		return nil, fmt.Errorf("%w: invalid tag %q", pkg.ErrValidation, in.Tag)
	}
	if !model.ValidIssuePriority(in.Priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", pkg.ErrValidation, in.Priority)
	}

	var assignee *model.User
	if in.AssigneeUsername != "" {
		if assignee, err = s.resolveAssignee(projectID, in.AssigneeUsername); err != nil {
			return nil, err
		}
	}

	issue := &model.Issue{
		ProjectID:   projectID,
		AuthorID:    actorID,
		Title:       in.Title,
		Description: in.Description,
		Tag:         in.Tag,
		Priority:    in.Priority,
		Status:      model.IssueStatusTodo,
	}
	if assignee != nil {
		issue.AssigneeID = &assignee.ID
	}

	event := newEvent(model.EventIssueCreated, projectID, actorID, map[string]any{
		"title": in.Title, "tag": in.Tag, "priority": in.Priority,
	})
	if err := s.repo.Create(issue, event); err != nil {
		return nil, err
	}

	if assignee != nil && s.notifier != nil {
		s.notifier.NotifyAssignment(assignee, project, issue)
	}
	return issue, nil
}

func (s *IssueService) ListIssues(actorID, projectID uint64, page, size int) ([]model.Issue, error) {
	if _, err := s.guardProject(actorID, projectID); err != nil {
		return nil, err
	}
	offset, limit := normalizePage(page, size)
	return s.repo.ListByProject(projectID, offset, limit)
}

func (s *IssueService) findInProject(projectID, issueID uint64) (*model.Issue, error) {
	issue, err := s.repo.FindByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: issue not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	// 议题的项目归属不可变，跨项目访问按不存在处理
	if issue.ProjectID != projectID {
		return nil, fmt.Errorf("%w: issue not found in this project", pkg.ErrNotFound)
	}
	return issue, nil
}

func (s *IssueService) GetIssue(actorID, projectID, issueID uint64) (*model.Issue, error) {
	if _, err := s.guardProject(actorID, projectID); err != nil {
		return nil, err
	}
	return s.findInProject(projectID, issueID)
}

func (s *IssueService) UpdateIssue(actorID, projectID, issueID uint64, upd IssueUpdate) (*model.Issue, error) {
	project, err := s.guardProject(actorID, projectID)
	if err != nil {
		return nil, err
	}
	issue, err := s.findInProject(projectID, issueID)
	if err != nil {
		return nil, err
	}
	if issue.AuthorID != actorID && project.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the issue author or the project author can update it", pkg.ErrPermission)
	}

	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: title required", pkg.ErrValidation)
		}
		issue.Title = *upd.Title
	}
	if upd.Description != nil {
		issue.Description = *upd.Description
	}
	if upd.Tag != nil {
		if !model.ValidIssueTag(*upd.Tag) {
			return nil, fmt.Errorf("%w: invalid tag %q", pkg.ErrValidation, *upd.Tag)
		}
		issue.Tag = *upd.Tag
	}
	if upd.Priority != nil {
		if !model.ValidIssuePriority(*upd.Priority) {
			return nil, fmt.Errorf("%w: invalid priority %q", pkg.ErrValidation, *upd.Priority)
		}
		issue.Priority = *upd.Priority
	}

	var event *model.ActivityOutbox
	if upd.Status != nil && *upd.Status != issue.Status {
		if !model.ValidIssueStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", pkg.ErrValidation, *upd.Status)
		}
		event = newEvent(model.EventIssueStatusChanged, projectID, actorID, map[string]any{
			"issue_id": issue.ID, "from": issue.Status, "to": *upd.Status,
		})
		issue.Status = *upd.Status
	}

	var assignee *model.User
	if upd.AssigneeUsername != nil {
		if *upd.AssigneeUsername == "" {
			issue.AssigneeID = nil
		} else {
			if assignee, err = s.resolveAssignee(projectID, *upd.AssigneeUsername); err != nil {
				return nil, err
			}
			if issue.AssigneeID != nil && *issue.AssigneeID == assignee.ID {
				assignee = nil // 未变化，不重复通知
			} else {
				issue.AssigneeID = &assignee.ID
			}
		}
	}

	if err := s.repo.Save(issue, event); err != nil {
		return nil, err
	}

	if assignee != nil && s.notifier != nil {
		s.notifier.NotifyAssignment(assignee, project, issue)
	}
	return issue, nil
}

// DeleteIssue 议题作者或项目作者可删，评论级联
func (s *IssueService) DeleteIssue(actorID, projectID, issueID uint64) error {
	project, err := s.guardProject(actorID, projectID)
	if err != nil {
		return err
	}
	issue, err := s.findInProject(projectID, issueID)
	if err != nil {
		return err
	}
	if issue.AuthorID != actorID && project.AuthorID != actorID {
		return fmt.Errorf("%w: only the issue author or the project author can delete it", pkg.ErrPermission)
	}

	event := newEvent(model.EventIssueDeleted, projectID, actorID, map[string]any{
		"issue_id": issue.ID, "title": issue.Title,
	})
	return s.repo.DeleteCascade(issueID, event)
}
