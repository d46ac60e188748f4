package applyhandler

import (
	"erm-backend/lib/apperr"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

var actionStatuses = map[dbmodels.ActionStatus]bool{
	dbmodels.ActionStatusPlanned:    true,
	dbmodels.ActionStatusInProgress: true,
	dbmodels.ActionStatusDone:       true,
}

func (i impl) validateAction(entityID *string, diff dbmodels.PayloadDiff) error {
	if entityID != nil {
		rec, err := i.actionStore.GetByID(*entityID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindNotFound, "мероприятие не найдено")
		}
	} else {
		if title, _ := strField(diff, "title"); title == "" {
			return apperr.New(apperr.KindValidation, "не указано название мероприятия")
		}
	}

	if status, ok := strField(diff, "status"); ok && !actionStatuses[dbmodels.ActionStatus(status)] {
		return apperr.Newf(apperr.KindValidation, "недопустимый статус мероприятия: %s", status)
	}
	if raw, ok := strField(diff, "due_date"); ok && raw != "" {
		if parsed, _ := timeField(diff, "due_date"); parsed == nil {
			return apperr.New(apperr.KindValidation, "неверный формат срока исполнения")
		}
	}

	if riskID, ok := strPtrField(diff, "risk_id"); ok && riskID != nil {
		rec, err := i.riskStore.GetByID(*riskID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанный риск не существует")
		}
	}
	if userID, ok := strPtrField(diff, "assigned_user_id"); ok && userID != nil {
		rec, err := i.usersStore.GetByID(*userID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанный исполнитель не существует")
		}
	}
	if deptID, ok := strPtrField(diff, "assigned_department_id"); ok && deptID != nil {
		rec, err := i.departmentStore.GetByID(*deptID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанное принимающее подразделение не существует")
		}
	}
	return nil
}

func (i impl) applyAction(item dbmodels.WorkflowItem) (Result, error) {
	diff := item.PayloadDiff

	if item.EntityID == nil {
		rec := dbmodels.RiskAction{Status: dbmodels.ActionStatusPlanned}
		rec.Title, _ = strField(diff, "title")
		rec.Description, _ = strField(diff, "description")
		if v, ok := strPtrField(diff, "risk_id"); ok {
			rec.RiskID = v
		}
		if v, ok := strPtrField(diff, "assigned_user_id"); ok {
			rec.AssignedUserID = v
		}
		if v, ok := strPtrField(diff, "assigned_department_id"); ok {
			rec.AssignedDepartmentID = v
		}
		if v, ok := timeField(diff, "due_date"); ok {
			rec.DueDate = v
		}
		if v, ok := strField(diff, "status"); ok {
			rec.Status = dbmodels.ActionStatus(v)
		}

		id, err := i.actionStore.Create(rec)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось создать мероприятие")
		}
		stored, err := i.actionStore.GetByID(id)
		if err != nil {
			return Result{}, err
		}
		after, err := snapshotOf(stored)
		if err != nil {
			return Result{}, err
		}
		return Result{EntityID: id, Action: models.AuditActionCreate, After: after}, nil
	}

	current, err := i.actionStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	if current == nil {
		return Result{}, apperr.New(apperr.KindDependency, "мероприятие было удалено до применения изменений")
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
	if v, ok := strField(diff, "status"); ok {
		updMap["status"] = v
	}
	for _, key := range []string{"risk_id", "assigned_user_id", "assigned_department_id"} {
		if v, ok := strPtrField(diff, key); ok {
			updMap[key] = v
		}
	}
	if v, ok := timeField(diff, "due_date"); ok {
		updMap["due_date"] = v
	}

	if err := i.actionStore.Update(*item.EntityID, updMap); err != nil {
		return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось обновить мероприятие")
	}
	updated, err := i.actionStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	after, err := snapshotOf(updated)
	if err != nil {
		return Result{}, err
	}
	return Result{EntityID: *item.EntityID, Action: models.AuditActionUpdate, Before: before, After: after}, nil
}
