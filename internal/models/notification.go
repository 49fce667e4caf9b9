package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// NotificationType is the closed set of notification categories.
type NotificationType string

const (
	NotificationAttendance   NotificationType = "ATTENDANCE"
	NotificationGrade        NotificationType = "GRADE"
	NotificationAnnouncement NotificationType = "ANNOUNCEMENT"
	NotificationSystem       NotificationType = "SYSTEM"
	NotificationGeneral      NotificationType = "GENERAL"
)

// Valid reports whether the type belongs to the closed set.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationAttendance, NotificationGrade, NotificationAnnouncement, NotificationSystem, NotificationGeneral:
		return true
	}
	return false
}

// IntBool maps the 0/1 integer read-flag column to a boolean at the
// repository boundary.
type IntBool bool

// Scan implements sql.Scanner.
func (b *IntBool) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*b = v != 0
	case bool:
		*b = IntBool(v)
	case nil:
		*b = false
	default:
		return fmt.Errorf("cannot scan %T into IntBool", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (b IntBool) Value() (driver.Value, error) {
	if b {
		return int64(1), nil
	}
	return int64(0), nil
}

// Notification is an append-only, user-targeted message. Content never
// changes after creation; the read flag moves one way only.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"userId"`
	Title     *string          `db:"title" json:"title,omitempty"`
	Message   string           `db:"message" json:"message"`
	Type      NotificationType `db:"type" json:"type"`
	IsRead    IntBool          `db:"is_read" json:"isRead"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}

// NotificationTypeCount holds per-type totals inside a summary.
type NotificationTypeCount struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// NotificationSummary aggregates a user's feed by type.
type NotificationSummary struct {
	Total  int                              `json:"total"`
	Unread int                              `json:"unread"`
	ByType map[string]NotificationTypeCount `json:"byType"`
}
