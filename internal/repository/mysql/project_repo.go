package mysql

import (
	"softdesk/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

// Create 建项目并在同一事务里把作者写入成员表（角色=author）
func (r *ProjectRepository) Create(p *model.Project) (*model.Project, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(&model.Contributor{
			ProjectID: p.ID,
			UserID:    p.AuthorID,
			Role:      model.ContributorRoleAuthor,
		}).Error
	})
	return p, err
}

func (r *ProjectRepository) FindByID(id uint64) (*model.Project, error) {
	var project model.Project
	err := r.DB.First(&project, id).Error
	return &project, err
}

// ListForUser 只返回用户参与的项目
func (r *ProjectRepository) ListForUser(userID uint64, offset, limit int) ([]model.Project, error) {
	var list []model.Project
	err := r.DB.
		Joins("JOIN contributors ON contributors.project_id = projects.id").
		Where("contributors.user_id = ?", userID).
		Order("projects.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *ProjectRepository) Save(p *model.Project) error {
	return r.DB.Save(p).Error
}

// DeleteCascade 级联删除：评论 → 议题 → 成员 → 项目
func (r *ProjectRepository) DeleteCascade(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id IN (?)",
			tx.Model(&model.Issue{}).Select("id").Where("project_id = ?", id),
		).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Contributor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
}
