package services

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"eduleave-api/models"
	"eduleave-api/utils"

	"gorm.io/gorm"
)

// Mailer sends an HTML message; config.Mailer satisfies it.
type Mailer interface {
	SendMail(to []string, subject, html string) error
}

type NotificationService struct {
	db      *gorm.DB
	mailer  Mailer
	baseURL string
	now     func() time.Time
}

// NewNotificationService builds the service. mailer may be nil to disable email.
func NewNotificationService(db *gorm.DB, mailer Mailer, baseURL string) *NotificationService {
	return &NotificationService{db: db, mailer: mailer, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), now: time.Now}
}

type decisionRecipient struct {
	ApplicationID uint               `gorm:"column:id"`
	StudentID     uint               `gorm:"column:student_id"`
	LeaveType     string             `gorm:"column:leave_type"`
	StartDate     string             `gorm:"column:start_date"`
	EndDate       string             `gorm:"column:end_date"`
	Status        models.LeaveStatus `gorm:"column:status"`
	StudentName   string             `gorm:"column:student_name"`
	StudentEmail  string             `gorm:"column:student_email"`
}

var decisionTitles = map[models.LeaveStatus]string{
	models.StatusApprovedAdvisor: "Leave application approved by advisor",
	models.StatusRejectedAdvisor: "Leave application rejected by advisor",
	models.StatusApprovedHOD:     "Leave application approved",
	models.StatusRejectedHOD:     "Leave application rejected by HOD",
}

// NotifyDecision stores an in-app notification for the student and emails them.
// Email failures are logged and do not fail the call.
func (s *NotificationService) NotifyDecision(ctx context.Context, applicationID uint, newStatus models.LeaveStatus, remark string) error {
	var rows []decisionRecipient
	if err := s.db.WithContext(ctx).
		Table("leave_applications AS la").
		Select("la.id, la.student_id, la.leave_type, la.start_date, la.end_date, la.status, u.name AS student_name, u.email AS student_email").
		Joins("JOIN users u ON la.student_id = u.id").
		Where("la.id = ?", applicationID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return fmt.Errorf("load application %d: %w", applicationID, err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	rcpt := rows[0]

	title, ok := decisionTitles[newStatus]
	if !ok {
		return fmt.Errorf("no notification for status %q", newStatus)
	}
	body := fmt.Sprintf("Your %s leave from %s to %s (%d day(s)) is now: %s.",
		rcpt.LeaveType,
		utils.FormatLeaveDate(rcpt.StartDate),
		utils.FormatLeaveDate(rcpt.EndDate),
		utils.LeaveDays(rcpt.StartDate, rcpt.EndDate),
		utils.StatusLabel(newStatus),
	)
	if r := strings.TrimSpace(remark); r != "" {
		body += "\nRemark: " + r
	}

	kind := models.NotificationSuccess
	if newStatus.IsRejected() {
		kind = models.NotificationWarning
	}

	appID := rcpt.ApplicationID
	n := models.Notification{
		UserID:               rcpt.StudentID,
		Title:                title,
		Message:              body,
		Type:                 kind,
		RelatedApplicationID: &appID,
		CreateAt:             s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if s.mailer != nil && rcpt.StudentEmail != "" {
		message := body
		if s.baseURL != "" {
			message += "\n\n" + s.baseURL
		}
		html := buildFormalEmailHTML(title, rcpt.StudentName, message)
		if err := s.mailer.SendMail([]string{rcpt.StudentEmail}, title, html); err != nil {
			log.Printf("notification email send failed (subject=%q to=%s): %v", title, rcpt.StudentEmail, err)
		}
	}
	return nil
}

const maxNotifications = 100

// List returns the newest notifications of userID.
func (s *NotificationService) List(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > maxNotifications {
		limit = maxNotifications
	}
	rows := make([]models.Notification, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_at DESC, notification_id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return rows, nil
}

// UnreadCount returns how many notifications of userID are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

// MarkRead flags one notification of userID as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"is_read": true, "update_at": s.now()})
	if res.Error != nil {
		return fmt.Errorf("mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Already-read rows report zero affected rows on MySQL; tell them apart.
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Notification{}).
			Where("notification_id = ? AND user_id = ?", notificationID, userID).
			Count(&n).Error; err != nil {
			return fmt.Errorf("check notification: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// MarkAllRead flags every unread notification of userID as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "update_at": s.now()})
	if res.Error != nil {
		return 0, fmt.Errorf("mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func buildFormalEmailHTML(subject, recipientName, message string) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "Student"
	}

	escapedSubject := template.HTMLEscapeString(subject)
	escapedGreeting := template.HTMLEscapeString(fmt.Sprintf("Dear %s,", name))
	escapedMessage := template.HTMLEscapeString(strings.TrimSpace(message))
	escapedMessage = strings.ReplaceAll(strings.ReplaceAll(escapedMessage, "\r\n", "\n"), "\r", "\n")
	escapedMessage = strings.ReplaceAll(escapedMessage, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">%s</p>
    <p style="margin:0 0 0 0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, escapedSubject, escapedGreeting, escapedMessage)
}
