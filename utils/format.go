package utils

import (
	"strconv"
	"strings"

	"eduleave-api/models"
)

var statusLabels = map[models.LeaveStatus]string{
	models.StatusPending:         "Pending advisor review",
	models.StatusApprovedAdvisor: "Approved by advisor",
	models.StatusRejectedAdvisor: "Rejected by advisor",
	models.StatusApprovedHOD:     "Approved by HOD",
	models.StatusRejectedHOD:     "Rejected by HOD",
}

// StatusLabel returns the human readable form of a leave status.
func StatusLabel(status models.LeaveStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return strings.ReplaceAll(string(status), "_", " ")
}

// FormatLeaveDate renders a YYYY-MM-DD date as "15 January 2024".
// Unparseable input is returned unchanged.
func FormatLeaveDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return strconv.Itoa(t.Day()) + " " + t.Month().String() + " " + strconv.Itoa(t.Year())
}

// LeaveDays counts the calendar days between start and end, both inclusive.
// It returns 0 when either date is invalid or end precedes start.
func LeaveDays(start, end string) int {
	s, ok := ParseDate(start)
	if !ok {
		return 0
	}
	e, ok := ParseDate(end)
	if !ok || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
