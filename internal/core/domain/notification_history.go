package domain

import "time"

// InitialHistoryComment is recorded on the creation entry of every notification.
const InitialHistoryComment = "届出を作成しました"

// NotificationHistory is an append-only ledger entry for a status change.
// StatusFrom is nil for the creation entry.
type NotificationHistory struct {
	HistoryID      string    `json:"historyID" db:"history_id"`
	NotificationID string    `json:"notificationID" db:"notification_id"`
	StatusFrom     *string   `json:"statusFrom" db:"status_from"`
	StatusTo       string    `json:"statusTo" db:"status_to"`
	ChangedBy      string    `json:"changedBy" db:"changed_by"`
	Comment        *string   `json:"comment" db:"comment"`
	ChangedAt      time.Time `json:"changedAt" db:"changed_at"`
}

// IsCreation reports whether the entry records the initial status.
func (h NotificationHistory) IsCreation() bool {
	return h.StatusFrom == nil
}
