package mysql

import (
	"softdesk/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(comment *model.Comment, event *model.ActivityOutbox) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if event != nil {
			return tx.Create(event).Error
		}
		return nil
	})
}

func (r *CommentRepository) FindByID(id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, id).Error
	return &comment, err
}

func (r *CommentRepository) ListByIssue(issueID uint64, offset, limit int) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.Where("issue_id = ?", issueID).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *CommentRepository) Save(comment *model.Comment) error {
	return r.DB.Save(comment).Error
}

func (r *CommentRepository) Delete(id uint64) error {
	return r.DB.Delete(&model.Comment{}, id).Error
}
