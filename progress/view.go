package progress

import (
	courseModels "elearn/models/course"
)

// ModuleStatus is the traversal state of one module for one user
type ModuleStatus string

const (
	ModuleLocked    ModuleStatus = "locked"
	ModuleUnlocked  ModuleStatus = "unlocked"
	ModuleCompleted ModuleStatus = "completed"
)

// CertificateState is the certificate workflow position for one enrollment
type CertificateState string

const (
	CertificateNotEligible CertificateState = "not_eligible"
	CertificateEligible    CertificateState = "eligible_not_requested"
	CertificatePending     CertificateState = "requested_pending"
	CertificateIssued      CertificateState = "issued"
)

// ModuleView is one module with its derived status
type ModuleView struct {
	Module courseModels.Module `json:"module"`
	Status ModuleStatus        `json:"status"`
	IsNext bool                `json:"is_next"` // the single next-to-watch module
}

// CourseView is the derived traversal state of one user in one course
type CourseView struct {
	CourseID         uint                      `json:"course_id"`
	Modules          []ModuleView              `json:"modules"`
	TotalModules     int                       `json:"total_modules"`
	CompletedCount   int                       `json:"completed_count"`
	NextModuleID     *uint                     `json:"next_module_id"`
	QuizUnlocked     bool                      `json:"quiz_unlocked"`
	QuizPassed       bool                      `json:"quiz_passed"`
	LatestAttempt    *courseModels.QuizAttempt `json:"latest_attempt,omitempty"`
	CertificateState CertificateState          `json:"certificate_state"`
}

// QuizResult is the outcome of one quiz submission
type QuizResult struct {
	Score         float64 `json:"score"`
	Passed        bool    `json:"passed"`
	AttemptNumber int     `json:"attempt_number"`
}

// buildView derives the full course view from raw rows. Modules must already
// be sorted in traversal order. Pure function, no reads or writes.
func buildView(courseID uint, modules []courseModels.Module, completed map[uint]bool, latest *courseModels.QuizAttempt, request *courseModels.CertificateRequest) *CourseView {
	view := &CourseView{
		CourseID:      courseID,
		Modules:       make([]ModuleView, len(modules)),
		TotalModules:  len(modules),
		LatestAttempt: latest,
	}

	nextFound := false
	for i, mod := range modules {
		status := ModuleLocked
		switch {
		case completed[mod.ID]:
			status = ModuleCompleted
			view.CompletedCount++
		case i == 0 || completed[modules[i-1].ID]:
			status = ModuleUnlocked
		}

		mv := ModuleView{Module: mod, Status: status}
		if status == ModuleUnlocked && !nextFound {
			mv.IsNext = true
			nextFound = true
			id := mod.ID
			view.NextModuleID = &id
		}
		view.Modules[i] = mv
	}

	// Zero modules means the quiz is trivially unlocked
	view.QuizUnlocked = view.CompletedCount == view.TotalModules
	view.QuizPassed = latest != nil && latest.Passed

	switch {
	case request != nil && request.Status == "ISSUED":
		view.CertificateState = CertificateIssued
	case request != nil:
		view.CertificateState = CertificatePending
	case view.QuizPassed:
		view.CertificateState = CertificateEligible
	default:
		view.CertificateState = CertificateNotEligible
	}

	return view
}
