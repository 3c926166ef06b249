package mysql

import (
	"softdesk/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) List(offset, limit int) ([]model.User, error) {
	var list []model.User
	err := r.DB.Order("id").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *UserRepository) Save(user *model.User) error {
	return r.DB.Save(user).Error
}

// Delete 删号即被遗忘：名下项目整树级联，别处发的议题/评论一并清理
func (r *UserRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// 本人作为作者的项目，连同其议题、评论、成员关系
		if err := tx.Where("issue_id IN (?)",
			tx.Model(&model.Issue{}).Select("id").Where("project_id IN (?)",
				tx.Model(&model.Project{}).Select("id").Where("author_id = ?", id)),
		).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id IN (?)",
			tx.Model(&model.Project{}).Select("id").Where("author_id = ?", id),
		).Delete(&model.Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id IN (?)",
			tx.Model(&model.Project{}).Select("id").Where("author_id = ?", id),
		).Delete(&model.Contributor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return err
		}

		// 其他项目里本人发的议题连同其评论
		if err := tx.Where("issue_id IN (?)",
			tx.Model(&model.Issue{}).Select("id").Where("author_id = ?", id),
		).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Issue{}).Where("assignee_id = ?", id).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Contributor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
