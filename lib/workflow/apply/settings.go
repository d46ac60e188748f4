package applyhandler

import (
	"erm-backend/lib/apperr"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

// Настройки сопоставляются по логическому ключу, а не по ID сущности.
func (i impl) validateSetting(diff dbmodels.PayloadDiff) error {
	key, _ := strField(diff, "key")
	if key == "" {
		return apperr.New(apperr.KindValidation, "не указан ключ настройки")
	}
	if _, ok := diff["value"]; !ok {
		return apperr.New(apperr.KindValidation, "не указано значение настройки")
	}
	return nil
}

func (i impl) applySetting(item dbmodels.WorkflowItem) (Result, error) {
	diff := item.PayloadDiff
	key, _ := strField(diff, "key")

	current, err := i.settingsStore.GetByKey(key)
	if err != nil {
		return Result{}, err
	}

	if current == nil {
		rec := dbmodels.AppSetting{Key: key}
		rec.Value, _ = strField(diff, "value")
		rec.Description, _ = strField(diff, "description")
		id, err := i.settingsStore.Create(rec)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось создать настройку")
		}
		stored, err := i.settingsStore.GetByKey(key)
		if err != nil {
			return Result{}, err
		}
		after, err := snapshotOf(stored)
		if err != nil {
			return Result{}, err
		}
		return Result{EntityID: id, Action: models.AuditActionCreate, After: after}, nil
	}

	before, err := snapshotOf(current)
	if err != nil {
		return Result{}, err
	}

	updMap := map[string]interface{}{}
	if v, ok := strField(diff, "value"); ok {
		updMap["value"] = v
	}
	if v, ok := strField(diff, "description"); ok {
		updMap["description"] = v
	}
	if err := i.settingsStore.UpdateByKey(key, updMap); err != nil {
		return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось обновить настройку")
	}
	updated, err := i.settingsStore.GetByKey(key)
	if err != nil {
		return Result{}, err
	}
	after, err := snapshotOf(updated)
	if err != nil {
		return Result{}, err
	}
	return Result{EntityID: current.ID, Action: models.AuditActionUpdate, Before: before, After: after}, nil
}
