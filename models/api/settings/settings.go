package settingsapimodels

import (
	dbmodels "erm-backend/models/db"
)

type SettingView struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func SettingConvert(rec dbmodels.AppSetting) SettingView {
	return SettingView{
		ID:          rec.ID,
		Key:         rec.Key,
		Value:       rec.Value,
		Description: rec.Description,
	}
}
