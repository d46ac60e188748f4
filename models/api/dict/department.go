package dictapimodels

import (
	dbmodels "erm-backend/models/db"
)

type DepartmentView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ParentID   string `json:"parent_id,omitempty"`
	HeadUserID string `json:"head_user_id,omitempty"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	view := DepartmentView{
		ID:       rec.ID,
		Name:     rec.Name,
		ParentID: rec.ParentID,
	}
	if rec.HeadUserID != nil {
		view.HeadUserID = *rec.HeadUserID
	}
	return view
}

type DepartmentTreeItem struct {
	DepartmentView
	SubUnits []DepartmentTreeItem `json:"sub_units"`
}
