package service

import (
	"errors"
	"fmt"

	"softdesk/internal/model"
	"softdesk/internal/pkg"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	repo    CommentRepo
	issues  IssueRepo
	members ContributorRepo
}

func NewCommentService(repo CommentRepo, issues IssueRepo, members ContributorRepo) *CommentService {
	return &CommentService{repo: repo, issues: issues, members: members}
}

// guardIssue 校验议题属于项目且操作者是项目成员
func (s *CommentService) guardIssue(actorID, projectID, issueID uint64) (*model.Issue, error) {
	issue, err := s.issues.FindByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: issue not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if issue.ProjectID != projectID {
		return nil, fmt.Errorf("%w: issue not found in this project", pkg.ErrNotFound)
	}
	ok, err := s.members.IsContributor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: you are not a contributor of this project", pkg.ErrPermission)
	}
	return issue, nil
}

func (s *CommentService) CreateComment(actorID, projectID, issueID uint64, description string) (*model.Comment, error) {
	issue, err := s.guardIssue(actorID, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description required", pkg.ErrValidation)
	}

	comment := &model.Comment{
		UUID:        uuid.NewString(),
		IssueID:     issue.ID,
		AuthorID:    actorID,
		Description: description,
	}
	event := newEvent(model.EventCommentCreated, projectID, actorID, map[string]any{
		"issue_id": issue.ID, "uuid": comment.UUID,
	})
	if err := s.repo.Create(comment, event); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(actorID, projectID, issueID uint64, page, size int) ([]model.Comment, error) {
	if _, err := s.guardIssue(actorID, projectID, issueID); err != nil {
		return nil, err
	}
	offset, limit := normalizePage(page, size)
	return s.repo.ListByIssue(issueID, offset, limit)
}

func (s *CommentService) findInIssue(issueID, commentID uint64) (*model.Comment, error) {
	comment, err := s.repo.FindByID(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: comment not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if comment.IssueID != issueID {
		return nil, fmt.Errorf("%w: comment not found in this issue", pkg.ErrNotFound)
	}
	return comment, nil
}

func (s *CommentService) GetComment(actorID, projectID, issueID, commentID uint64) (*model.Comment, error) {
	if _, err := s.guardIssue(actorID, projectID, issueID); err != nil {
		return nil, err
	}
	return s.findInIssue(issueID, commentID)
}

// UpdateComment 仅评论作者可改
func (s *CommentService) UpdateComment(actorID, projectID, issueID, commentID uint64, description string) (*model.Comment, error) {
	if _, err := s.guardIssue(actorID, projectID, issueID); err != nil {
		return nil, err
	}
	comment, err := s.findInIssue(issueID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the comment author can update it", pkg.ErrPermission)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description required", pkg.ErrValidation)
	}

	comment.Description = description
	if err := s.repo.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(actorID, projectID, issueID, commentID uint64) error {
	if _, err := s.guardIssue(actorID, projectID, issueID); err != nil {
		return err
	}
	comment, err := s.findInIssue(issueID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return fmt.Errorf("%w: only the comment author can delete it", pkg.ErrPermission)
	}
	return s.repo.Delete(comment.ID)
}
