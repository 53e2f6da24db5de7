package model

import "time"

// NotificationType controls how a notification is highlighted.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationUrgent  NotificationType = "urgent"
)

// Notification represents an alert surfaced to the user about a change to
// a ship or task.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	Title string `json:"title"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"createdAt"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	Type NotificationType `json:"type"`

	// RelatedID links this notification to the ship or task it describes.
	RelatedID string `json:"relatedId,omitempty"`
}

// NotificationInput is a notification before the store assigns its ID,
// timestamp and read flag.
type NotificationInput struct {
	Title     string
	Message   string
	Type      NotificationType
	RelatedID string
}
