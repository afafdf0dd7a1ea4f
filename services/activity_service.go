// services/activity_service.go - Best-Effort Audit Trail
package services

import (
	"log"

	"collabsphere/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService appends rows to the activity trail. Recording is
// best-effort: a failed write must never fail the operation that triggered
// it, so Record swallows persistence errors and returns the in-memory row,
// which the caller is free to ignore.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// ActivityEntry is the input for one audit event.
type ActivityEntry struct {
	Actor     models.Principal
	EventType models.ActivityEventType
	Message   string
	TeamID    *uint
	ProjectID *uint
	TaskID    *uint
	Metadata  map[string]interface{}
}

// Record writes the entry to the trail. Unauthenticated actors are stored
// with a null actor reference. The audit write sits outside the caller's
// transaction boundary on purpose; its failure is logged and suppressed.
func (s *ActivityService) Record(e ActivityEntry) *models.ActivityLog {
	var actorID *uint
	if e.Actor.Authenticated {
		id := e.Actor.UserID
		actorID = &id
	}

	meta := map[string]interface{}{}
	for k, v := range e.Metadata {
		meta[k] = v
	}
	if e.Actor.RequestID != "" {
		meta["request_id"] = e.Actor.RequestID
	}

	row := &models.ActivityLog{
		ActorID:   actorID,
		EventType: e.EventType,
		Message:   e.Message,
		TeamID:    e.TeamID,
		ProjectID: e.ProjectID,
		TaskID:    e.TaskID,
		Metadata:  datatypes.JSONMap(meta),
	}

	if err := s.db.Create(row).Error; err != nil {
		log.Printf("activity log write failed (event_type=%s): %v", e.EventType, err)
	}
	return row
}

// ActivityFilter narrows an activity listing.
type ActivityFilter struct {
	TeamID    *uint
	ProjectID *uint
	TaskID    *uint
	EventType models.ActivityEventType
	Limit     int
}

// List returns trail entries for teams the principal belongs to, newest
// first. List access is filtered at the query level rather than through a
// per-row permission check.
func (s *ActivityService) List(p models.Principal, f ActivityFilter) ([]models.ActivityLog, error) {
	if !p.Authenticated {
		return nil, ErrPermissionDenied
	}

	q := s.db.
		Joins("JOIN team_memberships ON team_memberships.team_id = activity_logs.team_id").
		Where("team_memberships.user_id = ?", p.UserID)

	if f.TeamID != nil {
		q = q.Where("activity_logs.team_id = ?", *f.TeamID)
	}
	if f.ProjectID != nil {
		q = q.Where("activity_logs.project_id = ?", *f.ProjectID)
	}
	if f.TaskID != nil {
		q = q.Where("activity_logs.task_id = ?", *f.TaskID)
	}
	if f.EventType != "" {
		q = q.Where("activity_logs.event_type = ?", f.EventType)
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var logs []models.ActivityLog
	err := q.Preload("Actor").
		Order("activity_logs.created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
