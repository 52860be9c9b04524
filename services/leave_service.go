package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"eduleave-api/models"
	"eduleave-api/utils"

	"gorm.io/gorm"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// DecisionNotifier is told about every committed status change.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, applicationID uint, newStatus models.LeaveStatus, remark string) error
}

// CreateLeaveInput is the payload accepted by LeaveService.Create.
type CreateLeaveInput struct {
	LeaveType    string
	StartDate    string
	EndDate      string
	Reason       string
	DocumentPath *string
}

// ListFilter narrows ListApplications beyond the role scope.
type ListFilter struct {
	Status    string
	LeaveType string
}

// DecisionResult describes an accepted approval-stage action.
type DecisionResult struct {
	ApplicationID uint               `json:"application_id"`
	OldStatus     models.LeaveStatus `json:"old_status"`
	NewStatus     models.LeaveStatus `json:"new_status"`
	Message       string             `json:"message"`
}

// reviewStage describes one approval gate of the workflow.
type reviewStage struct {
	name         string
	role         string
	from         models.LeaveStatus
	approveTo    models.LeaveStatus
	rejectTo     models.LeaveStatus
	remarkColumn string
}

var (
	advisorStage = reviewStage{
		name:         "advisor",
		role:         models.RoleAdvisor,
		from:         models.StatusPending,
		approveTo:    models.StatusApprovedAdvisor,
		rejectTo:     models.StatusRejectedAdvisor,
		remarkColumn: "advisor_remark",
	}
	hodStage = reviewStage{
		name:         "hod",
		role:         models.RoleHOD,
		from:         models.StatusApprovedAdvisor,
		approveTo:    models.StatusApprovedHOD,
		rejectTo:     models.StatusRejectedHOD,
		remarkColumn: "hod_remark",
	}
)

func (st reviewStage) target(action string) (models.LeaveStatus, bool) {
	switch action {
	case ActionApprove:
		return st.approveTo, true
	case ActionReject:
		return st.rejectTo, true
	}
	return "", false
}

type LeaveService struct {
	db       *gorm.DB
	notifier DecisionNotifier
	now      func() time.Time
}

// NewLeaveService builds the workflow service. notifier may be nil.
func NewLeaveService(db *gorm.DB, notifier DecisionNotifier) *LeaveService {
	return &LeaveService{db: db, notifier: notifier, now: time.Now}
}

// Create files a new pending application for student.
func (s *LeaveService) Create(ctx context.Context, student *models.User, in CreateLeaveInput) (*models.LeaveApplication, error) {
	leaveType := models.LeaveType(strings.ToLower(strings.TrimSpace(in.LeaveType)))
	reason := utils.SanitizeInput(in.Reason)

	if leaveType == "" || in.StartDate == "" || in.EndDate == "" || reason == "" {
		return nil, validationf("leave_type, start_date, end_date and reason are required")
	}
	if !leaveType.Valid() {
		return nil, validationf("Invalid leave_type")
	}
	start, ok := utils.ParseDate(in.StartDate)
	if !ok {
		return nil, validationf("start_date must be YYYY-MM-DD")
	}
	end, ok := utils.ParseDate(in.EndDate)
	if !ok {
		return nil, validationf("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, validationf("end_date must not be before start_date")
	}

	var docPath *string
	if in.DocumentPath != nil {
		if p := utils.SanitizeInput(*in.DocumentPath); p != "" {
			docPath = &p
		}
	}

	app := models.LeaveApplication{
		StudentID:    student.ID,
		LeaveType:    leaveType,
		StartDate:    start.Format(utils.DateLayout),
		EndDate:      end.Format(utils.DateLayout),
		Reason:       reason,
		DocumentPath: docPath,
		Status:       models.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&app).Error; err != nil {
		return nil, fmt.Errorf("create leave application: %w", err)
	}
	return &app, nil
}

// visibleApplications scopes the joined application view to what requester may see.
func visibleApplications(db *gorm.DB, requester *models.User) *gorm.DB {
	q := db.Table("leave_applications AS la").
		Select("la.*, u.name AS student_name, u.email AS student_email, d.name AS department_name, c.name AS class_name").
		Joins("JOIN users u ON la.student_id = u.id").
		Joins("LEFT JOIN departments d ON u.department_id = d.id").
		Joins("LEFT JOIN classes c ON u.class_id = c.id")

	switch requester.Role {
	case models.RoleStudent:
		q = q.Where("la.student_id = ?", requester.ID)
	case models.RoleAdvisor:
		advised := db.Table("classes").Select("id").Where("advisor_id = ?", requester.ID)
		q = q.Where("u.class_id IN (?)", advised).
			Where("la.status IN ?", statusNames(models.StatusPending, models.StatusApprovedAdvisor))
	case models.RoleHOD:
		if requester.DepartmentID == nil {
			return q.Where("1 = 0")
		}
		q = q.Where("u.department_id = ?", *requester.DepartmentID).
			Where("la.status IN ?", statusNames(models.StatusApprovedAdvisor, models.StatusApprovedHOD, models.StatusRejectedHOD))
	case models.RoleAdmin:
		// admin sees every application
	default:
		return q.Where("1 = 0")
	}
	return q
}

func statusNames(statuses ...models.LeaveStatus) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

// List returns the applications visible to requester, newest first.
func (s *LeaveService) List(ctx context.Context, requester *models.User, filter ListFilter) ([]models.LeaveApplicationView, error) {
	q := visibleApplications(s.db.WithContext(ctx), requester)

	if st := strings.TrimSpace(filter.Status); st != "" {
		if !models.LeaveStatus(st).Valid() {
			return nil, validationf("Invalid status filter")
		}
		q = q.Where("la.status = ?", st)
	}
	if lt := strings.TrimSpace(filter.LeaveType); lt != "" {
		if !models.LeaveType(lt).Valid() {
			return nil, validationf("Invalid leave_type filter")
		}
		q = q.Where("la.leave_type = ?", lt)
	}

	rows := make([]models.LeaveApplicationView, 0)
	if err := q.Order("la.created_at DESC, la.id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list leave applications: %w", err)
	}
	return rows, nil
}

// Get returns one application if requester may see it.
func (s *LeaveService) Get(ctx context.Context, requester *models.User, id uint) (*models.LeaveApplicationView, error) {
	var rows []models.LeaveApplicationView
	err := visibleApplications(s.db.WithContext(ctx), requester).
		Where("la.id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load leave application: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// History returns the status transitions of an application visible to requester.
func (s *LeaveService) History(ctx context.Context, requester *models.User, id uint) ([]models.LeaveStatusHistory, error) {
	if _, err := s.Get(ctx, requester, id); err != nil {
		return nil, err
	}

	rows := make([]models.LeaveStatusHistory, 0)
	if err := s.db.WithContext(ctx).
		Where("application_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load status history: %w", err)
	}
	return rows, nil
}

// AdvisorAction moves a pending application to approved_advisor or rejected_advisor.
func (s *LeaveService) AdvisorAction(ctx context.Context, actor *models.User, id uint, action, remark string) (*DecisionResult, error) {
	return s.decide(ctx, advisorStage, actor, id, action, remark)
}

// HodAction moves an approved_advisor application to approved_hod or rejected_hod.
func (s *LeaveService) HodAction(ctx context.Context, actor *models.User, id uint, action, remark string) (*DecisionResult, error) {
	return s.decide(ctx, hodStage, actor, id, action, remark)
}

func (s *LeaveService) decide(ctx context.Context, stage reviewStage, actor *models.User, id uint, action, remark string) (*DecisionResult, error) {
	if actor == nil || actor.Role != stage.role {
		return nil, ErrForbidden
	}

	action = strings.ToLower(strings.TrimSpace(action))
	target, ok := stage.target(action)
	if !ok {
		return nil, s.rejectUnknownAction(ctx, stage, id)
	}

	now := s.now()
	remarkPtr := optionalString(remark)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The prerequisite status in the WHERE clause is the race guard: a second
		// approver's update matches no row instead of overwriting the first.
		res := tx.Model(&models.LeaveApplication{}).
			Where("id = ? AND status = ?", id, string(stage.from)).
			Updates(map[string]interface{}{
				"status":           string(target),
				stage.remarkColumn: remarkPtr,
				"updated_at":       now,
			})
		if res.Error != nil {
			return fmt.Errorf("update application: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return ErrNotFoundOrProcessed
		}

		history := models.LeaveStatusHistory{
			ApplicationID: id,
			OldStatus:     stage.from,
			NewStatus:     target,
			ChangedBy:     actor.ID,
			Remark:        remarkPtr,
			CreatedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("log status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		// The request may finish before delivery; keep its values, drop its deadline.
		go s.notify(context.WithoutCancel(ctx), stage, id, target, remark)
	}

	return &DecisionResult{
		ApplicationID: id,
		OldStatus:     stage.from,
		NewStatus:     target,
		Message:       "Leave application " + actionPastTense[action] + " successfully",
	}, nil
}

var actionPastTense = map[string]string{
	ActionApprove: "approved",
	ActionReject:  "rejected",
}

// rejectUnknownAction reports a row outside the stage's gate as not found before
// complaining about the action, so a processed application reads the same for any action.
func (s *LeaveService) rejectUnknownAction(ctx context.Context, stage reviewStage, id uint) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.LeaveApplication{}).
		Where("id = ? AND status = ?", id, string(stage.from)).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("check application: %w", err)
	}
	if n == 0 {
		return ErrNotFoundOrProcessed
	}
	return validationf("action must be either 'approve' or 'reject'")
}

func (s *LeaveService) notify(ctx context.Context, stage reviewStage, id uint, status models.LeaveStatus, remark string) {
	if err := s.notifier.NotifyDecision(ctx, id, status, remark); err != nil {
		log.Printf("notify %s decision for application %d: %v", stage.name, id, err)
	}
}

// Summary aggregates the requester's visible applications the way the dashboard shows them.
type Summary struct {
	Role     string                        `json:"role"`
	Total    int                           `json:"total"`
	Pending  int                           `json:"pending"`
	Approved int                           `json:"approved"`
	Rejected int                           `json:"rejected"`
	ByStatus map[models.LeaveStatus]int    `json:"by_status,omitempty"`
	Recent   []models.LeaveApplicationView `json:"recent"`
}

const recentApplicationsLimit = 5

func (s *LeaveService) Summary(ctx context.Context, requester *models.User) (*Summary, error) {
	rows, err := s.List(ctx, requester, ListFilter{})
	if err != nil {
		return nil, err
	}
	return summarize(requester.Role, rows), nil
}

func summarize(role string, rows []models.LeaveApplicationView) *Summary {
	sum := &Summary{Role: role, Total: len(rows)}

	for _, row := range rows {
		st := row.Status
		switch role {
		case models.RoleStudent:
			switch {
			case st == models.StatusPending:
				sum.Pending++
			case st.IsApproved():
				sum.Approved++
			case st.IsRejected():
				sum.Rejected++
			}
		case models.RoleAdvisor:
			if st == models.StatusPending {
				sum.Pending++
			} else if st == models.StatusApprovedAdvisor {
				sum.Approved++
			}
		case models.RoleHOD:
			switch st {
			case models.StatusApprovedAdvisor:
				sum.Pending++
			case models.StatusApprovedHOD:
				sum.Approved++
			case models.StatusRejectedHOD:
				sum.Rejected++
			}
		case models.RoleAdmin:
			if sum.ByStatus == nil {
				sum.ByStatus = make(map[models.LeaveStatus]int, len(models.LeaveStatuses))
			}
			sum.ByStatus[st]++
			switch {
			case st == models.StatusPending:
				sum.Pending++
			case st.IsApproved():
				sum.Approved++
			case st.IsRejected():
				sum.Rejected++
			}
		}
	}

	n := len(rows)
	if n > recentApplicationsLimit {
		n = recentApplicationsLimit
	}
	sum.Recent = rows[:n]
	return sum
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
