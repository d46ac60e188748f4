package applyhandler

import (
	"erm-backend/lib/apperr"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

var riskStatuses = map[dbmodels.RiskStatus]bool{
	dbmodels.RiskStatusActive:   true,
	dbmodels.RiskStatusAccepted: true,
	dbmodels.RiskStatusClosed:   true,
}

func (i impl) validateRisk(entityID *string, diff dbmodels.PayloadDiff) error {
	if entityID != nil {
		rec, err := i.riskStore.GetByID(*entityID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindNotFound, "риск не найден")
		}
	} else {
		if title, _ := strField(diff, "title"); title == "" {
			return apperr.New(apperr.KindValidation, "не указано название риска")
		}
	}

	for _, key := range []string{"likelihood", "impact"} {
		if v, ok := intField(diff, key); ok && (v < 1 || v > 5) {
			return apperr.Newf(apperr.KindValidation, "значение %s должно быть от 1 до 5", key)
		}
	}

	if status, ok := strField(diff, "status"); ok && !riskStatuses[dbmodels.RiskStatus(status)] {
		return apperr.Newf(apperr.KindValidation, "недопустимый статус риска: %s", status)
	}

	if deptID, ok := strPtrField(diff, "department_id"); ok && deptID != nil {
		rec, err := i.departmentStore.GetByID(*deptID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанное подразделение не существует")
		}
	}
	if catID, ok := strPtrField(diff, "category_id"); ok && catID != nil {
		rec, err := i.categoryStore.GetCategoryByID(*catID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанная категория не существует")
		}
	}
	if subID, ok := strPtrField(diff, "subcategory_id"); ok && subID != nil {
		rec, err := i.categoryStore.GetSubcategoryByID(*subID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанная подкатегория не существует")
		}
	}
	if ownerID, ok := strPtrField(diff, "owner_user_id"); ok && ownerID != nil {
		rec, err := i.usersStore.GetByID(*ownerID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанный владелец риска не существует")
		}
	}
	return nil
}

func (i impl) applyRisk(item dbmodels.WorkflowItem) (Result, error) {
	diff := item.PayloadDiff

	if item.EntityID == nil {
		rec := dbmodels.Risk{Status: dbmodels.RiskStatusActive}
		rec.Title, _ = strField(diff, "title")
		rec.Description, _ = strField(diff, "description")
		if v, ok := strPtrField(diff, "department_id"); ok {
			rec.DepartmentID = v
		}
		if v, ok := strPtrField(diff, "category_id"); ok {
			rec.CategoryID = v
		}
		if v, ok := strPtrField(diff, "subcategory_id"); ok {
			rec.SubcategoryID = v
		}
		if v, ok := strPtrField(diff, "owner_user_id"); ok {
			rec.OwnerUserID = v
		}
		if v, ok := intField(diff, "likelihood"); ok {
			rec.Likelihood = v
		}
		if v, ok := intField(diff, "impact"); ok {
			rec.Impact = v
		}
		if v, ok := strField(diff, "status"); ok {
			rec.Status = dbmodels.RiskStatus(v)
		}
		rec.Level = rec.Likelihood * rec.Impact

		id, err := i.riskStore.Create(rec)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось создать риск")
		}
		stored, err := i.riskStore.GetByID(id)
		if err != nil {
			return Result{}, err
		}
		after, err := snapshotOf(stored)
		if err != nil {
			return Result{}, err
		}
		return Result{EntityID: id, Action: models.AuditActionCreate, After: after}, nil
	}

	current, err := i.riskStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	if current == nil {
		return Result{}, apperr.New(apperr.KindDependency, "риск был удалён до применения изменений")
	}
	before, err := snapshotOf(current)
	if err != nil {
		return Result{}, err
	}

	updMap := map[string]interface{}{}
	if v, ok := strField(diff, "title"); ok {
		updMap["title"] = v
	}
	if v, ok := strField(diff, "description"); ok {
		updMap["description"] = v
	}
	for _, key := range []string{"department_id", "category_id", "subcategory_id", "owner_user_id"} {
		if v, ok := strPtrField(diff, key); ok {
			updMap[key] = v
		}
	}
	if v, ok := strField(diff, "status"); ok {
		updMap["status"] = v
	}

	likelihood, impact := current.Likelihood, current.Impact
	if v, ok := intField(diff, "likelihood"); ok {
		likelihood = v
		updMap["likelihood"] = v
	}
	if v, ok := intField(diff, "impact"); ok {
		impact = v
		updMap["impact"] = v
	}
	if _, ok := updMap["likelihood"]; ok {
		updMap["level"] = likelihood * impact
	} else if _, ok := updMap["impact"]; ok {
		updMap["level"] = likelihood * impact
	}

	if err := i.riskStore.Update(*item.EntityID, updMap); err != nil {
		return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось обновить риск")
	}
	updated, err := i.riskStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	after, err := snapshotOf(updated)
	if err != nil {
		return Result{}, err
	}
	return Result{EntityID: *item.EntityID, Action: models.AuditActionUpdate, Before: before, After: after}, nil
}
