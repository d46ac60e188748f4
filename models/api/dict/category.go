package dictapimodels

import (
	dbmodels "erm-backend/models/db"
)

type CategoryView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Subcategories []SubcategoryView `json:"subcategories,omitempty"`
}

func CategoryConvert(rec dbmodels.RiskCategory, subs []dbmodels.RiskSubcategory) CategoryView {
	view := CategoryView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
	}
	for _, sub := range subs {
		if sub.CategoryID != rec.ID {
			continue
		}
		view.Subcategories = append(view.Subcategories, SubcategoryConvert(sub))
	}
	return view
}

type SubcategoryView struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

func SubcategoryConvert(rec dbmodels.RiskSubcategory) SubcategoryView {
	return SubcategoryView{
		ID:         rec.ID,
		CategoryID: rec.CategoryID,
		Name:       rec.Name,
	}
}
