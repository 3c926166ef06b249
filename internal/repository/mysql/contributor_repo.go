package mysql

import (
	"softdesk/internal/model"

	"gorm.io/gorm"
)

type ContributorRepository struct {
	DB *gorm.DB
}

// Add 依赖 (project_id, user_id) 唯一键兜底并发重复
func (r *ContributorRepository) Add(member *model.Contributor) error {
	return r.DB.Create(member).Error
}

func (r *ContributorRepository) Remove(projectID, userID uint64) error {
	return r.DB.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.Contributor{}).Error
}

func (r *ContributorRepository) IsContributor(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Contributor{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ContributorRepository) ListByProject(projectID uint64) ([]model.Contributor, error) {
	var list []model.Contributor
	err := r.DB.Where("project_id = ?", projectID).Order("id").Find(&list).Error
	return list, err
}
