package persistence

import (
	"context"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements transfer.NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a new notification
func (r *GormNotificationRepository) Create(ctx context.Context, notification *transfer.Notification) error {
	model := models.NotificationModelFromDomain(notification)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateStatusByTransaction sets the delivery status of the notifications
// linked to a transaction
func (r *GormNotificationRepository) UpdateStatusByTransaction(ctx context.Context, transactionID uuid.UUID, status transfer.NotificationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("transaction_id = ?", transactionID).
		Update("status", status).Error
}

// FindByTransaction lists the notifications linked to a transaction
func (r *GormNotificationRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]transfer.Notification, error) {
	var notificationModels []models.NotificationModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]transfer.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ transfer.NotificationRepository = (*GormNotificationRepository)(nil)
