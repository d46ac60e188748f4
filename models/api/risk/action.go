package riskapimodels

import (
	"time"

	dbmodels "erm-backend/models/db"
)

type ActionView struct {
	ID                     string     `json:"id"`
	RiskID                 string     `json:"risk_id,omitempty"`
	Title                  string     `json:"title"`
	Description            string     `json:"description,omitempty"`
	DueDate                *time.Time `json:"due_date,omitempty"`
	Status                 string     `json:"status"`
	AssignedUserID         string     `json:"assigned_user_id,omitempty"`
	AssignedUserName       string     `json:"assigned_user_name,omitempty"`
	AssignedDepartmentID   string     `json:"assigned_department_id,omitempty"`
	AssignedDepartmentName string     `json:"assigned_department_name,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func ActionConvert(rec dbmodels.RiskAction) ActionView {
	view := ActionView{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		DueDate:     rec.DueDate,
		Status:      string(rec.Status),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.RiskID != nil {
		view.RiskID = *rec.RiskID
	}
	if rec.AssignedUserID != nil {
		view.AssignedUserID = *rec.AssignedUserID
	}
	if rec.AssignedUser != nil {
		view.AssignedUserName = rec.AssignedUser.GetFullName()
	}
	if rec.AssignedDepartmentID != nil {
		view.AssignedDepartmentID = *rec.AssignedDepartmentID
	}
	if rec.AssignedDepartment != nil {
		view.AssignedDepartmentName = rec.AssignedDepartment.Name
	}
	return view
}
