package models

import "time"

// LeaveStatusHistory records one accepted status transition of an application.
type LeaveStatusHistory struct {
	ID            uint        `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID uint        `gorm:"column:application_id;not null;index" json:"application_id"`
	OldStatus     LeaveStatus `gorm:"column:old_status;size:20;not null" json:"old_status"`
	NewStatus     LeaveStatus `gorm:"column:new_status;size:20;not null" json:"new_status"`
	ChangedBy     uint        `gorm:"column:changed_by;not null" json:"changed_by"`
	Remark        *string     `gorm:"column:remark;type:text" json:"remark"`
	CreatedAt     time.Time   `gorm:"column:created_at" json:"created_at"`
}

func (LeaveStatusHistory) TableName() string {
	return "leave_status_history"
}
