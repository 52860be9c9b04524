package models

import (
	"strings"
	"time"
)

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeEmergency LeaveType = "emergency"
	LeaveTypePersonal  LeaveType = "personal"
)

// LeaveTypes lists the accepted leave types.
var LeaveTypes = []LeaveType{LeaveTypeSick, LeaveTypeCasual, LeaveTypeEmergency, LeaveTypePersonal}

func (t LeaveType) Valid() bool {
	for _, known := range LeaveTypes {
		if t == known {
			return true
		}
	}
	return false
}

type LeaveStatus string

const (
	StatusPending         LeaveStatus = "pending"
	StatusApprovedAdvisor LeaveStatus = "approved_advisor"
	StatusRejectedAdvisor LeaveStatus = "rejected_advisor"
	StatusApprovedHOD     LeaveStatus = "approved_hod"
	StatusRejectedHOD     LeaveStatus = "rejected_hod"
)

// LeaveStatuses lists every status in workflow order.
var LeaveStatuses = []LeaveStatus{
	StatusPending,
	StatusApprovedAdvisor,
	StatusRejectedAdvisor,
	StatusApprovedHOD,
	StatusRejectedHOD,
}

func (s LeaveStatus) Valid() bool {
	for _, known := range LeaveStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s LeaveStatus) IsApproved() bool { return strings.Contains(string(s), "approved") }
func (s LeaveStatus) IsRejected() bool { return strings.Contains(string(s), "rejected") }

type LeaveApplication struct {
	ID            uint        `gorm:"primaryKey;column:id" json:"id"`
	StudentID     uint        `gorm:"column:student_id;not null;index" json:"student_id"`
	LeaveType     LeaveType   `gorm:"column:leave_type;size:20;not null" json:"leave_type"`
	StartDate     string      `gorm:"column:start_date;size:10;not null" json:"start_date"` // YYYY-MM-DD
	EndDate       string      `gorm:"column:end_date;size:10;not null" json:"end_date"`     // YYYY-MM-DD
	Reason        string      `gorm:"column:reason;type:text;not null" json:"reason"`
	DocumentPath  *string     `gorm:"column:document_path" json:"document_path"`
	Status        LeaveStatus `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	AdvisorRemark *string     `gorm:"column:advisor_remark;type:text" json:"advisor_remark"`
	HodRemark     *string     `gorm:"column:hod_remark;type:text" json:"hod_remark"`
	CreatedAt     time.Time   `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"column:updated_at" json:"updated_at"`

	Student *User `gorm:"foreignKey:StudentID" json:"-"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// LeaveApplicationView is what list endpoints return: the application plus
// the requesting student's identity and placement.
type LeaveApplicationView struct {
	LeaveApplication
	StudentName    string  `gorm:"column:student_name" json:"student_name"`
	StudentEmail   string  `gorm:"column:student_email" json:"student_email"`
	DepartmentName *string `gorm:"column:department_name" json:"department_name"`
	ClassName      *string `gorm:"column:class_name" json:"class_name"`
}
