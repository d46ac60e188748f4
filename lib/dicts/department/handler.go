package departmenthandler

import (
	"erm-backend/db"
	"erm-backend/lib/apperr"
	departmentstore "erm-backend/lib/dicts/department/store"
	dictapimodels "erm-backend/models/api/dict"
)

type Provider interface {
	List() (list []dictapimodels.DepartmentView, err error)
	GetByID(id string) (view dictapimodels.DepartmentView, err error)
	// Tree - иерархия подразделений от корневых к вложенным.
	Tree() (tree []dictapimodels.DepartmentTreeItem, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store departmentstore.Provider
}

func (i impl) List() ([]dictapimodels.DepartmentView, error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list := make([]dictapimodels.DepartmentView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, dictapimodels.DepartmentConvert(rec))
	}
	return list, nil
}

func (i impl) GetByID(id string) (view dictapimodels.DepartmentView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, apperr.New(apperr.KindNotFound, "подразделение не найдено")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) Tree() ([]dictapimodels.DepartmentTreeItem, error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, err
	}
	byParent := map[string][]dictapimodels.DepartmentView{}
	known := map[string]bool{}
	for _, rec := range recs {
		known[rec.ID] = true
	}
	for _, rec := range recs {
		parentID := rec.ParentID
		// подразделение с несуществующим родителем поднимается в корень
		if !known[parentID] {
			parentID = ""
		}
		byParent[parentID] = append(byParent[parentID], dictapimodels.DepartmentConvert(rec))
	}
	return buildTree("", byParent), nil
}

func buildTree(parentID string, byParent map[string][]dictapimodels.DepartmentView) []dictapimodels.DepartmentTreeItem {
	items := []dictapimodels.DepartmentTreeItem{}
	for _, view := range byParent[parentID] {
		items = append(items, dictapimodels.DepartmentTreeItem{
			DepartmentView: view,
			SubUnits:       buildTree(view.ID, byParent),
		})
	}
	return items
}
