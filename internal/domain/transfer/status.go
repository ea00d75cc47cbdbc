package transfer

// Status represents the settlement status of a transaction
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing" // initial status of a newly created transfer
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRejected   Status = "rejected"
	StatusOnHold     Status = "on_hold"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled, StatusRejected, StatusOnHold:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Transition is an (old status, new status) pair. The settlement side effects
// of a status update are a function of the pair, never of the new status alone.
type Transition struct {
	From Status
	To   Status
}

// RecognizesProfit reports whether the transition triggers profit recognition
// for the sending branch
func (t Transition) RecognizesProfit() bool {
	return t.From == StatusProcessing && t.To == StatusCompleted
}

// RequiresRefund reports whether the transition returns the full transfer
// amount to the sending branch and reverses any recognized profit
func (t Transition) RequiresRefund() bool {
	if t.To != StatusCancelled && t.To != StatusRejected {
		return false
	}
	return t.From == StatusProcessing || t.From == StatusCompleted
}

// NotificationStatusFor derives the notification delivery status from the
// transaction status
func NotificationStatusFor(s Status) NotificationStatus {
	switch s {
	case StatusCompleted:
		return NotificationSent
	case StatusCancelled, StatusRejected:
		return NotificationFailed
	default:
		return NotificationPending
	}
}
