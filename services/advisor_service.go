// services/advisor_service.go - Heuristic Advisory Service
//
// Two deterministic, stateless scoring functions over task attributes.
// Neither is a model: both are branchy heuristics kept pure so they can be
// tested without a database.
package services

import (
	"fmt"
	"strings"
	"time"

	"collabsphere/models"

	"gorm.io/gorm"
)

type AdvisorService struct {
	db         *gorm.DB
	membership *MembershipService
	activity   *ActivityService
}

func NewAdvisorService(db *gorm.DB, membership *MembershipService, activity *ActivityService) *AdvisorService {
	return &AdvisorService{db: db, membership: membership, activity: activity}
}

var (
	urgentKeywords = []string{"urgent", "asap", "blocker", "critical", "p0"}
	highKeywords   = []string{"important", "deadline", "risk", "customer", "incident"}
)

const defaultRationale = "Baseline heuristic: default medium priority."

const delayRiskExplanation = "Baseline heuristic model using due date proximity, status, assignee presence, and priority."

// PrioritySignals are the inputs to the priority heuristic.
type PrioritySignals struct {
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     *time.Time
	Now         time.Time
}

// SuggestPriority runs the priority heuristic. Priority is an ordered scale
// that only ratchets upward as rules fire, except that a done status forces
// low regardless of every other signal.
func SuggestPriority(sig PrioritySignals) (models.TaskPriority, string) {
	suggested := models.TaskPriorityMedium
	var rationale []string

	text := strings.ToLower(sig.Title + "\n" + sig.Description)
	if containsAny(text, urgentKeywords) {
		suggested = models.TaskPriorityUrgent
		rationale = append(rationale, "Detected urgency keywords.")
	} else if containsAny(text, highKeywords) {
		suggested = models.TaskPriorityHigh
		rationale = append(rationale, "Detected high-impact keywords.")
	}

	if sig.DueDate != nil {
		delta := sig.DueDate.Sub(sig.Now)
		switch {
		case delta <= 24*time.Hour:
			suggested = maxPriority(suggested, models.TaskPriorityUrgent)
			rationale = append(rationale, "Due within 24 hours.")
		case delta <= 3*24*time.Hour:
			suggested = maxPriority(suggested, models.TaskPriorityHigh)
			rationale = append(rationale, "Due within 3 days.")
		case delta <= 7*24*time.Hour:
			suggested = maxPriority(suggested, models.TaskPriorityMedium)
			rationale = append(rationale, "Due within 7 days.")
		}
	}

	if sig.Status == models.TaskStatusBlocked {
		suggested = maxPriority(suggested, models.TaskPriorityHigh)
		rationale = append(rationale, "Task is blocked.")
	}
	if sig.Status == models.TaskStatusDone {
		// Unconditional override, applied last.
		suggested = models.TaskPriorityLow
		rationale = append(rationale, "Task is done; low priority.")
	}

	if len(rationale) == 0 {
		return suggested, defaultRationale
	}
	return suggested, strings.Join(rationale, " ")
}

// DelayRiskSignals are the inputs to the delay-risk heuristic.
type DelayRiskSignals struct {
	Status      models.TaskStatus
	Priority    models.TaskPriority
	HasAssignee bool
	DueDate     *time.Time
	Now         time.Time
}

// PredictDelayRisk runs the delay-risk heuristic and returns the clamped
// score with its level. A done status zeroes the score after every additive
// adjustment has been applied: done always wins.
func PredictDelayRisk(sig DelayRiskSignals) (float64, string) {
	risk := 0.15 // baseline

	if !sig.HasAssignee {
		risk += 0.25
	}

	if sig.Status == models.TaskStatusTodo {
		risk += 0.10
	}
	if sig.Status == models.TaskStatusBlocked {
		risk += 0.35
	}

	if sig.Priority == models.TaskPriorityHigh || sig.Priority == models.TaskPriorityUrgent {
		risk += 0.10
	}

	if sig.DueDate != nil {
		delta := sig.DueDate.Sub(sig.Now)
		switch {
		case delta < 0:
			risk += 0.35 // overdue
		case delta <= 24*time.Hour:
			risk += 0.25
		case delta <= 3*24*time.Hour:
			risk += 0.15
		case delta <= 7*24*time.Hour:
			risk += 0.05
		}
	}

	if sig.Status == models.TaskStatusDone {
		risk = 0.0
	}

	if risk < 0 {
		risk = 0
	}
	if risk > 1 {
		risk = 1
	}

	return risk, riskLevel(risk)
}

func riskLevel(risk float64) string {
	switch {
	case risk >= 0.67:
		return "high"
	case risk >= 0.34:
		return "medium"
	default:
		return "low"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func maxPriority(a, b models.TaskPriority) models.TaskPriority {
	if a >= b {
		return a
	}
	return b
}

// PrioritySuggestRequest carries the task reference plus optional overrides;
// unset overrides default to the stored task's own values.
type PrioritySuggestRequest struct {
	TaskID      uint
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     *time.Time
}

type PrioritySuggestion struct {
	SuggestedPriority models.TaskPriority `json:"suggested_priority"`
	Rationale         string              `json:"rationale"`
}

// loadTaskForMember resolves the task and enforces project membership. An
// unknown task is a validation error on task_id (the task is the request
// target); a membership miss is a denial.
func (s *AdvisorService) loadTaskForMember(p models.Principal, taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Project").First(&task, taskID).Error; err != nil {
		return nil, NewValidationError("task_id", "Task not found.")
	}

	if !s.membership.CanReadProject(p, task.ProjectID) {
		return nil, ErrPermissionDenied
	}
	return &task, nil
}

// SuggestTaskPriority gates on project membership, fills unset overrides
// from the stored task, runs the heuristic, and records the audit event.
func (s *AdvisorService) SuggestTaskPriority(p models.Principal, req PrioritySuggestRequest) (*PrioritySuggestion, error) {
	task, err := s.loadTaskForMember(p, req.TaskID)
	if err != nil {
		return nil, err
	}

	sig := PrioritySignals{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Now:         time.Now().UTC(),
	}
	if sig.Title == "" {
		sig.Title = task.Title
	}
	if sig.Description == "" {
		sig.Description = task.Description
	}
	if sig.Status == "" {
		sig.Status = task.Status
	}
	if sig.DueDate == nil {
		sig.DueDate = task.DueDate
	}

	priority, rationale := SuggestPriority(sig)

	var teamID *uint
	if task.Project != nil {
		teamID = &task.Project.TeamID
	}
	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventAIPrioritySuggested,
		Message:   "AI suggested priority",
		TeamID:    teamID,
		ProjectID: &task.ProjectID,
		TaskID:    &task.ID,
		Metadata:  map[string]interface{}{"suggested_priority": int(priority)},
	})

	return &PrioritySuggestion{SuggestedPriority: priority, Rationale: rationale}, nil
}

// DelayRiskRequest carries the task reference plus optional overrides.
type DelayRiskRequest struct {
	TaskID      uint
	Status      models.TaskStatus
	Priority    models.TaskPriority
	HasAssignee *bool
	DueDate     *time.Time
}

type DelayRiskPrediction struct {
	RiskScore   float64 `json:"risk_score"`
	RiskLevel   string  `json:"risk_level"`
	Explanation string  `json:"explanation"`
}

// PredictTaskDelayRisk gates on project membership, fills unset overrides
// from the stored task, runs the heuristic, and records the audit event.
func (s *AdvisorService) PredictTaskDelayRisk(p models.Principal, req DelayRiskRequest) (*DelayRiskPrediction, error) {
	task, err := s.loadTaskForMember(p, req.TaskID)
	if err != nil {
		return nil, err
	}

	sig := DelayRiskSignals{
		Status:   req.Status,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		Now:      time.Now().UTC(),
	}
	if sig.Status == "" {
		sig.Status = task.Status
	}
	if sig.Priority == 0 {
		sig.Priority = task.Priority
	}
	if req.HasAssignee != nil {
		sig.HasAssignee = *req.HasAssignee
	} else {
		sig.HasAssignee = task.AssigneeID != nil
	}
	if sig.DueDate == nil {
		sig.DueDate = task.DueDate
	}

	score, level := PredictDelayRisk(sig)

	var teamID *uint
	if task.Project != nil {
		teamID = &task.Project.TeamID
	}
	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventAIDelayRiskPredicted,
		Message:   fmt.Sprintf("AI predicted delay risk: %s", level),
		TeamID:    teamID,
		ProjectID: &task.ProjectID,
		TaskID:    &task.ID,
		Metadata:  map[string]interface{}{"risk_score": score, "risk_level": level},
	})

	return &DelayRiskPrediction{RiskScore: score, RiskLevel: level, Explanation: delayRiskExplanation}, nil
}
