package deptknowledgehandler

import (
	"erm-backend/db"
	"erm-backend/lib/apperr"
	deptknowledgestore "erm-backend/lib/dept-knowledge/store"
	dictapimodels "erm-backend/models/api/dict"
)

type Provider interface {
	ListByDepartment(departmentID string) (list []dictapimodels.KnowledgeView, err error)
	GetByID(id string) (view dictapimodels.KnowledgeView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: deptknowledgestore.NewInstance(db.DB),
	}
}

type impl struct {
	store deptknowledgestore.Provider
}

func (i impl) ListByDepartment(departmentID string) ([]dictapimodels.KnowledgeView, error) {
	recs, err := i.store.ListByDepartment(departmentID)
	if err != nil {
		return nil, err
	}
	list := make([]dictapimodels.KnowledgeView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, dictapimodels.KnowledgeConvert(rec))
	}
	return list, nil
}

func (i impl) GetByID(id string) (view dictapimodels.KnowledgeView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, apperr.New(apperr.KindNotFound, "запись базы знаний не найдена")
	}
	return dictapimodels.KnowledgeConvert(*rec), nil
}
