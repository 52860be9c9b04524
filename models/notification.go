package models

import "time"

const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

type Notification struct {
	NotificationID       uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID               uint       `gorm:"column:user_id;not null;index" json:"user_id"`
	Title                string     `gorm:"column:title;size:200" json:"title"`
	Message              string     `gorm:"column:message;type:text" json:"message"`
	Type                 string     `gorm:"column:type;size:20" json:"type"` // info|success|warning|error
	RelatedApplicationID *uint      `gorm:"column:related_application_id" json:"related_application_id,omitempty"`
	IsRead               bool       `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreateAt             time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
