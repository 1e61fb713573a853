package domain

import (
	"fmt"
	"strings"
)

type PlanStatus string

const (
	PlanDraft     PlanStatus = "draft"
	PlanSubmitted PlanStatus = "submitted"
	PlanApproved  PlanStatus = "approved"
)

type LogStatus string

const (
	LogPendingReview LogStatus = "pending_review"
	LogApproved      LogStatus = "approved"
)

type Role string

const (
	RoleGuide  Role = "guide"
	RoleLeader Role = "leader"
	RoleAdmin  Role = "admin"
)

// planStatusAliases maps stored spellings, including the labels older sheets
// were written with, to a canonical status.
var planStatusAliases = map[string]PlanStatus{
	"draft":     PlanDraft,
	"임시저장":      PlanDraft,
	"submitted": PlanSubmitted,
	"제출":        PlanSubmitted,
	"":          PlanSubmitted,
	"approved":  PlanApproved,
	"승인완료":      PlanApproved,
}

var logStatusAliases = map[string]LogStatus{
	"pending_review": LogPendingReview,
	"pending":        LogPendingReview,
	"검토대기":           LogPendingReview,
	"":               LogPendingReview,
	"approved":       LogApproved,
	"승인완료":           LogApproved,
}

var roleAliases = map[string]Role{
	"guide":  RoleGuide,
	"해설사":    RoleGuide,
	"leader": RoleLeader,
	"조장":     RoleLeader,
	"admin":  RoleAdmin,
	"관리자":    RoleAdmin,
}

// ParsePlanStatus accepts canonical and legacy spellings. Empty means submitted.
func ParsePlanStatus(s string) (PlanStatus, error) {
	if st, ok := planStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown plan status %q", s)
}

// ParseLogStatus accepts canonical and legacy spellings. Empty means pending review.
func ParseLogStatus(s string) (LogStatus, error) {
	if st, ok := logStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown log status %q", s)
}

func ParseRole(s string) (Role, error) {
	if r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Label returns the Korean label used on printed sheets.
func (r Role) Label() string {
	switch r {
	case RoleLeader:
		return "조장"
	case RoleAdmin:
		return "관리자"
	default:
		return "해설사"
	}
}
