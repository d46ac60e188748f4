package dictapimodels

import (
	"time"

	dbmodels "erm-backend/models/db"
)

type KnowledgeView struct {
	ID             string    `json:"id"`
	DepartmentID   string    `json:"department_id,omitempty"`
	DepartmentName string    `json:"department_name,omitempty"`
	Title          string    `json:"title"`
	Content        string    `json:"content,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func KnowledgeConvert(rec dbmodels.DeptKnowledge) KnowledgeView {
	view := KnowledgeView{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.DepartmentID != nil {
		view.DepartmentID = *rec.DepartmentID
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	return view
}
