package mysql

import (
	"context"

	"softdesk/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// ListPending 取一批待投递事件
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]model.ActivityOutbox, error) {
	var rows []model.ActivityOutbox
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).
		Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}

// MarkRetry 失败计数，超限置为 failed
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"retry":  gorm.Expr("retry + 1"),
			"status": gorm.Expr("CASE WHEN retry + 1 >= ? THEN ? ELSE ? END", maxRetry, model.OutboxFailed, model.OutboxPending),
		}).Error
}
