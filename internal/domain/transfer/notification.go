package transfer

import (
	"fmt"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// NotificationStatus represents the delivery status of a notification
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// IsValid checks if the status is a valid NotificationStatus
func (s NotificationStatus) IsValid() bool {
	switch s {
	case NotificationPending, NotificationSent, NotificationFailed:
		return true
	}
	return false
}

// Notification is the message queued for the receiver when a transfer is
// created. Its delivery status tracks the transaction status.
type Notification struct {
	shared.BaseEntity
	TransactionID  uuid.UUID
	RecipientPhone string
	Message        string
	Status         NotificationStatus
}

// NewTransferNotification creates the pending notification announcing an
// incoming transfer to the receiver's mobile number
func NewTransferNotification(t *Transaction) *Notification {
	amount, _ := valueobject.NewMoney(t.Amount, t.Currency)
	return &Notification{
		BaseEntity:     shared.NewBaseEntity(),
		TransactionID:  t.ID,
		RecipientPhone: t.Receiver.Mobile,
		Message: fmt.Sprintf("Incoming transfer %s of %s for %s",
			t.ID, amount, t.Receiver.Name),
		Status: NotificationPending,
	}
}
