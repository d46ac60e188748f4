package settingshandler

import (
	"erm-backend/db"
	"erm-backend/lib/apperr"
	settingsstore "erm-backend/lib/settings/store"
	settingsapimodels "erm-backend/models/api/settings"
)

// Чтение настроек; изменение значений идёт через цепочку согласования.
type Provider interface {
	List() (list []settingsapimodels.SettingView, err error)
	GetByKey(key string) (view settingsapimodels.SettingView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: settingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	store settingsstore.Provider
}

func (i impl) List() ([]settingsapimodels.SettingView, error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list := make([]settingsapimodels.SettingView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, settingsapimodels.SettingConvert(rec))
	}
	return list, nil
}

func (i impl) GetByKey(key string) (view settingsapimodels.SettingView, err error) {
	rec, err := i.store.GetByKey(key)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, apperr.New(apperr.KindNotFound, "настройка не найдена")
	}
	return settingsapimodels.SettingConvert(*rec), nil
}
