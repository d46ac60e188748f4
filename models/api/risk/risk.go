package riskapimodels

import (
	"time"

	apimodels "erm-backend/models/api"
	dbmodels "erm-backend/models/db"
)

type RiskFilter struct {
	apimodels.Pagination
	DepartmentID string `json:"department_id,omitempty"`
	CategoryID   string `json:"category_id,omitempty"`
	Status       string `json:"status,omitempty"`
	Search       string `json:"search,omitempty"` // поиск по названию
}

type RiskView struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	DepartmentID   string    `json:"department_id,omitempty"`
	DepartmentName string    `json:"department_name,omitempty"`
	CategoryID     string    `json:"category_id,omitempty"`
	SubcategoryID  string    `json:"subcategory_id,omitempty"`
	OwnerUserID    string    `json:"owner_user_id,omitempty"`
	Likelihood     int       `json:"likelihood"`
	Impact         int       `json:"impact"`
	Level          int       `json:"level"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func RiskConvert(rec dbmodels.Risk) RiskView {
	view := RiskView{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Likelihood:  rec.Likelihood,
		Impact:      rec.Impact,
		Level:       rec.Level,
		Status:      string(rec.Status),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.DepartmentID != nil {
		view.DepartmentID = *rec.DepartmentID
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	if rec.CategoryID != nil {
		view.CategoryID = *rec.CategoryID
	}
	if rec.SubcategoryID != nil {
		view.SubcategoryID = *rec.SubcategoryID
	}
	if rec.OwnerUserID != nil {
		view.OwnerUserID = *rec.OwnerUserID
	}
	return view
}

type AttachmentView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

func AttachmentConvert(rec dbmodels.FileStorage) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		Name:        rec.Name,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		CreatedAt:   rec.CreatedAt,
	}
}
