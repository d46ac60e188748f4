package auditapimodels

import (
	"time"

	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

type AuditView struct {
	ID         string                 `json:"id"`
	EntityType models.EntityType      `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	UserID     string                 `json:"user_id"`
	UserName   string                 `json:"user_name"`
	Action     models.AuditAction     `json:"action"`
	Before     map[string]interface{} `json:"before"`
	After      map[string]interface{} `json:"after"`
	CreatedAt  time.Time              `json:"created_at"`
}

func AuditConvert(rec dbmodels.AuditLog) AuditView {
	view := AuditView{
		ID:         rec.ID,
		EntityType: rec.EntityType,
		EntityID:   rec.EntityID,
		UserID:     rec.UserID,
		Action:     rec.Action,
		Before:     rec.Before,
		After:      rec.After,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.User != nil {
		view.UserName = rec.User.GetFullName()
	}
	return view
}
