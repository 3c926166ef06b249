package mysql

import (
	"softdesk/internal/model"

	"gorm.io/gorm"
)

type IssueRepository struct {
	DB *gorm.DB
}

// Create 议题与 outbox 事件同事务写入
func (r *IssueRepository) Create(issue *model.Issue, event *model.ActivityOutbox) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(issue).Error; err != nil {
			return err
		}
		if event != nil {
			return tx.Create(event).Error
		}
		return nil
	})
}

func (r *IssueRepository) FindByID(id uint64) (*model.Issue, error) {
	var issue model.Issue
	err := r.DB.First(&issue, id).Error
	return &issue, err
}

func (r *IssueRepository) ListByProject(projectID uint64, offset, limit int) ([]model.Issue, error) {
	var list []model.Issue
	err := r.DB.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *IssueRepository) Save(issue *model.Issue, event *model.ActivityOutbox) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(issue).Error; err != nil {
			return err
		}
		if event != nil {
			return tx.Create(event).Error
		}
		return nil
	})
}

// DeleteCascade 删除议题及其评论
func (r *IssueRepository) DeleteCascade(id uint64, event *model.ActivityOutbox) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Issue{}, id).Error; err != nil {
			return err
		}
		if event != nil {
			return tx.Create(event).Error
		}
		return nil
	})
}
