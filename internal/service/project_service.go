package service

import (
	"errors"
	"fmt"

	"softdesk/internal/model"
	"softdesk/internal/pkg"

	"gorm.io/gorm"
)

type ProjectService struct {
	repo    ProjectRepo
	members ContributorRepo
	users   UserRepo
}

func NewProjectService(repo ProjectRepo, members ContributorRepo, users UserRepo) *ProjectService {
	return &ProjectService{repo: repo, members: members, users: users}
}

type ProjectUpdate struct {
	Title       *string
	Description *string
	Type        *string
}

// ContributorInfo 成员列表视图
type ContributorInfo struct {
	ID       uint64 `json:"id"`
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
}

func (s *ProjectService) CreateProject(authorID uint64, title, description, ptype string) (*model.Project, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title required", pkg.ErrValidation)
	}
	if !model.ValidProjectType(ptype) {
		return nil, fmt.Errorf("%w: invalid project type %q", pkg.ErrValidation, ptype)
	}

	project := &model.Project{
		Title:       title,
		Description: description,
		Type:        ptype,
		AuthorID:    authorID,
	}
	return s.repo.Create(project)
}

// findVisible 非成员一律 403，项目不存在 404
func (s *ProjectService) findVisible(actorID, projectID uint64) (*model.Project, error) {
	project, err := s.repo.FindByID(projectID)
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

func (s *ProjectService) GetProject(actorID, projectID uint64) (*model.Project, error) {
	return s.findVisible(actorID, projectID)
}

func (s *ProjectService) ListProjects(actorID uint64, page, size int) ([]model.Project, error) {
	offset, limit := normalizePage(page, size)
	return s.repo.ListForUser(actorID, offset, limit)
}

func (s *ProjectService) UpdateProject(actorID, projectID uint64, upd ProjectUpdate) (*model.Project, error) {
	project, err := s.findVisible(actorID, projectID)
	if err != nil {
		return nil, err
	}
	if project.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the project author can update it", pkg.ErrPermission)
	}

	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: title required", pkg.ErrValidation)
		}
		project.Title = *upd.Title
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}
	if upd.Type != nil {
		if !model.ValidProjectType(*upd.Type) {
			return nil, fmt.Errorf("%w: invalid project type %q", pkg.ErrValidation, *upd.Type)
		}
		project.Type = *upd.Type
	}

	if err := s.repo.Save(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(actorID, projectID uint64) error {
	project, err := s.findVisible(actorID, projectID)
	if err != nil {
		return err
	}
	if project.AuthorID != actorID {
		return fmt.Errorf("%w: only the project author can delete it", pkg.ErrPermission)
	}
	return s.repo.DeleteCascade(projectID)
}

func (s *ProjectService) ListContributors(actorID, projectID uint64) ([]ContributorInfo, error) {
	if _, err := s.findVisible(actorID, projectID); err != nil {
		return nil, err
	}
	members, err := s.members.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]ContributorInfo, 0, len(members))
	for _, m := range members {
		user, err := s.users.FindByID(m.UserID)
		if err != nil {
			return nil, fmt.Errorf("contributor %d: %w", m.UserID, err)
		}
		out = append(out, ContributorInfo{ID: m.ID, UserID: m.UserID, Username: user.Username, Role: m.Role})
	}
	return out, nil
}

func (s *ProjectService) AddContributor(actorID, projectID uint64, username string) (*ContributorInfo, error) {
	project, err := s.findVisible(actorID, projectID)
	if err != nil {
		return nil, err
	}
	if project.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the project author can add contributors", pkg.ErrPermission)
	}

	user, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %q not found", pkg.ErrNotFound, username)
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.members.IsContributor(projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, fmt.Errorf("%w: user is already a contributor", pkg.ErrConflict)
	}

	member := &model.Contributor{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      model.ContributorRoleMember,
	}
	if err := s.members.Add(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user is already a contributor", pkg.ErrConflict)
		}
		return nil, err
	}
	return &ContributorInfo{ID: member.ID, UserID: user.ID, Username: user.Username, Role: member.Role}, nil
}

func (s *ProjectService) RemoveContributor(actorID, projectID uint64, username string) error {
	project, err := s.findVisible(actorID, projectID)
	if err != nil {
		return err
	}
	if project.AuthorID != actorID {
		return fmt.Errorf("%w: only the project author can remove contributors", pkg.ErrPermission)
	}

	user, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %q not found", pkg.ErrNotFound, username)
	}
	if err != nil {
		return err
	}

	// 作者必须始终留在成员表里
	if user.ID == project.AuthorID {
		return fmt.Errorf("%w: the project author cannot be removed", pkg.ErrPermission)
	}

	ok, err := s.members.IsContributor(projectID, user.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: user is not a contributor of this project", pkg.ErrNotFound)
	}
	return s.members.Remove(projectID, user.ID)
}
