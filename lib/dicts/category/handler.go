package categoryhandler

import (
	"erm-backend/db"
	"erm-backend/lib/apperr"
	categorystore "erm-backend/lib/dicts/category/store"
	dictapimodels "erm-backend/models/api/dict"
)

type Provider interface {
	// List - категории с вложенными подкатегориями.
	List() (list []dictapimodels.CategoryView, err error)
	GetByID(id string) (view dictapimodels.CategoryView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: categorystore.NewInstance(db.DB),
	}
}

type impl struct {
	store categorystore.Provider
}

func (i impl) List() ([]dictapimodels.CategoryView, error) {
	recs, err := i.store.ListCategories()
	if err != nil {
		return nil, err
	}
	subs, err := i.store.ListSubcategories()
	if err != nil {
		return nil, err
	}
	list := make([]dictapimodels.CategoryView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, dictapimodels.CategoryConvert(rec, subs))
	}
	return list, nil
}

func (i impl) GetByID(id string) (view dictapimodels.CategoryView, err error) {
	rec, err := i.store.GetCategoryByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, apperr.New(apperr.KindNotFound, "категория не найдена")
	}
	subs, err := i.store.ListSubcategories()
	if err != nil {
		return view, err
	}
	return dictapimodels.CategoryConvert(*rec, subs), nil
}
