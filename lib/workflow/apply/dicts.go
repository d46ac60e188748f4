package applyhandler

import (
	"erm-backend/lib/apperr"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

func (i impl) validateDepartment(entityID *string, diff dbmodels.PayloadDiff) error {
	if entityID != nil {
		rec, err := i.departmentStore.GetByID(*entityID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindNotFound, "подразделение не найдено")
		}
	} else {
		if name, _ := strField(diff, "name"); name == "" {
			return apperr.New(apperr.KindValidation, "не указано название подразделения")
		}
	}
	if parentID, ok := strPtrField(diff, "parent_id"); ok && parentID != nil {
		rec, err := i.departmentStore.GetByID(*parentID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "родительское подразделение не существует")
		}
	}
	if headID, ok := strPtrField(diff, "head_user_id"); ok && headID != nil {
		rec, err := i.usersStore.GetByID(*headID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindValidation, "указанный руководитель не существует")
		}
	}
	return nil
}

func (i impl) applyDepartment(item dbmodels.WorkflowItem) (Result, error) {
	diff := item.PayloadDiff

	if item.EntityID == nil {
		rec := dbmodels.Department{}
		rec.Name, _ = strField(diff, "name")
		rec.ParentID, _ = strField(diff, "parent_id")
		if v, ok := strPtrField(diff, "head_user_id"); ok {
			rec.HeadUserID = v
		}
		id, err := i.departmentStore.Create(rec)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось создать подразделение")
		}
		stored, err := i.departmentStore.GetByID(id)
		if err != nil {
			return Result{}, err
		}
		after, err := snapshotOf(stored)
		if err != nil {
			return Result{}, err
		}
		return Result{EntityID: id, Action: models.AuditActionCreate, After: after}, nil
	}

	current, err := i.departmentStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	if current == nil {
		return Result{}, apperr.New(apperr.KindDependency, "подразделение было удалено до применения изменений")
	}
	before, err := snapshotOf(current)
	if err != nil {
		return Result{}, err
	}

	updMap := map[string]interface{}{}
	if v, ok := strField(diff, "name"); ok {
		updMap["name"] = v
	}
	if v, ok := strField(diff, "parent_id"); ok {
		updMap["parent_id"] = v
	}
	if v, ok := strPtrField(diff, "head_user_id"); ok {
		updMap["head_user_id"] = v
	}
	if err := i.departmentStore.Update(*item.EntityID, updMap); err != nil {
		return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось обновить подразделение")
	}
	updated, err := i.departmentStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	after, err := snapshotOf(updated)
	if err != nil {
		return Result{}, err
	}
	return Result{EntityID: *item.EntityID, Action: models.AuditActionUpdate, Before: before, After: after}, nil
}

func (i impl) validateKnowledge(entityID *string, diff dbmodels.PayloadDiff) error {
	if entityID != nil {
		rec, err := i.knowledgeStore.GetByID(*entityID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindNotFound, "запись базы знаний не найдена")
		}
	} else {
		if title, _ := strField(diff, "title"); title == "" {
			return apperr.New(apperr.KindValidation, "не указан заголовок записи")
		}
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
	return nil
}

func (i impl) applyKnowledge(item dbmodels.WorkflowItem) (Result, error) {
	diff := item.PayloadDiff

	if item.EntityID == nil {
		rec := dbmodels.DeptKnowledge{}
		rec.Title, _ = strField(diff, "title")
		rec.Content, _ = strField(diff, "content")
		if v, ok := strPtrField(diff, "department_id"); ok {
			rec.DepartmentID = v
		} else {
			rec.DepartmentID = item.DepartmentID
		}
		id, err := i.knowledgeStore.Create(rec)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось создать запись базы знаний")
		}
		stored, err := i.knowledgeStore.GetByID(id)
		if err != nil {
			return Result{}, err
		}
		after, err := snapshotOf(stored)
		if err != nil {
			return Result{}, err
		}
		return Result{EntityID: id, Action: models.AuditActionCreate, After: after}, nil
	}

	current, err := i.knowledgeStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	if current == nil {
		return Result{}, apperr.New(apperr.KindDependency, "запись базы знаний была удалена до применения изменений")
	}
	before, err := snapshotOf(current)
	if err != nil {
		return Result{}, err
	}

	updMap := map[string]interface{}{}
	if v, ok := strField(diff, "title"); ok {
		updMap["title"] = v
	}
	if v, ok := strField(diff, "content"); ok {
		updMap["content"] = v
	}
	if v, ok := strPtrField(diff, "department_id"); ok {
		updMap["department_id"] = v
	}
	if err := i.knowledgeStore.Update(*item.EntityID, updMap); err != nil {
		return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось обновить запись базы знаний")
	}
	updated, err := i.knowledgeStore.GetByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	after, err := snapshotOf(updated)
	if err != nil {
		return Result{}, err
	}
	return Result{EntityID: *item.EntityID, Action: models.AuditActionUpdate, Before: before, After: after}, nil
}

func (i impl) validateCategory(entityID *string, diff dbmodels.PayloadDiff) error {
	if entityID != nil {
		rec, err := i.categoryStore.GetCategoryByID(*entityID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindNotFound, "категория не найдена")
		}
		return nil
	}
	if name, _ := strField(diff, "name"); name == "" {
		return apperr.New(apperr.KindValidation, "не указано название категории")
	}
	return nil
}

func (i impl) applyCategory(item dbmodels.WorkflowItem) (Result, error) {
	diff := item.PayloadDiff

	if item.EntityID == nil {
		rec := dbmodels.RiskCategory{}
		rec.Name, _ = strField(diff, "name")
		rec.Description, _ = strField(diff, "description")
		id, err := i.categoryStore.CreateCategory(rec)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось создать категорию")
		}
		stored, err := i.categoryStore.GetCategoryByID(id)
		if err != nil {
			return Result{}, err
		}
		after, err := snapshotOf(stored)
		if err != nil {
			return Result{}, err
		}
		return Result{EntityID: id, Action: models.AuditActionCreate, After: after}, nil
	}

	current, err := i.categoryStore.GetCategoryByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	if current == nil {
		return Result{}, apperr.New(apperr.KindDependency, "категория была удалена до применения изменений")
	}
	before, err := snapshotOf(current)
	if err != nil {
		return Result{}, err
	}

	updMap := map[string]interface{}{}
	if v, ok := strField(diff, "name"); ok {
		updMap["name"] = v
	}
	if v, ok := strField(diff, "description"); ok {
		updMap["description"] = v
	}
	if err := i.categoryStore.UpdateCategory(*item.EntityID, updMap); err != nil {
		return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось обновить категорию")
	}
	updated, err := i.categoryStore.GetCategoryByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	after, err := snapshotOf(updated)
	if err != nil {
		return Result{}, err
	}
	return Result{EntityID: *item.EntityID, Action: models.AuditActionUpdate, Before: before, After: after}, nil
}

func (i impl) validateSubcategory(entityID *string, diff dbmodels.PayloadDiff) error {
	if entityID != nil {
		rec, err := i.categoryStore.GetSubcategoryByID(*entityID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.New(apperr.KindNotFound, "подкатегория не найдена")
		}
	} else {
		if name, _ := strField(diff, "name"); name == "" {
			return apperr.New(apperr.KindValidation, "не указано название подкатегории")
		}
		if catID, _ := strField(diff, "category_id"); catID == "" {
			return apperr.New(apperr.KindValidation, "не указана категория")
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
	return nil
}

func (i impl) applySubcategory(item dbmodels.WorkflowItem) (Result, error) {
	diff := item.PayloadDiff

	if item.EntityID == nil {
		rec := dbmodels.RiskSubcategory{}
		rec.Name, _ = strField(diff, "name")
		rec.CategoryID, _ = strField(diff, "category_id")
		id, err := i.categoryStore.CreateSubcategory(rec)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось создать подкатегорию")
		}
		stored, err := i.categoryStore.GetSubcategoryByID(id)
		if err != nil {
			return Result{}, err
		}
		after, err := snapshotOf(stored)
		if err != nil {
			return Result{}, err
		}
		return Result{EntityID: id, Action: models.AuditActionCreate, After: after}, nil
	}

	current, err := i.categoryStore.GetSubcategoryByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	if current == nil {
		return Result{}, apperr.New(apperr.KindDependency, "подкатегория была удалена до применения изменений")
	}
	before, err := snapshotOf(current)
	if err != nil {
		return Result{}, err
	}

	updMap := map[string]interface{}{}
	if v, ok := strField(diff, "name"); ok {
		updMap["name"] = v
	}
	if v, ok := strField(diff, "category_id"); ok && v != "" {
		updMap["category_id"] = v
	}
	if err := i.categoryStore.UpdateSubcategory(*item.EntityID, updMap); err != nil {
		return Result{}, apperr.Wrap(apperr.KindDependency, err, "не удалось обновить подкатегорию")
	}
	updated, err := i.categoryStore.GetSubcategoryByID(*item.EntityID)
	if err != nil {
		return Result{}, err
	}
	after, err := snapshotOf(updated)
	if err != nil {
		return Result{}, err
	}
	return Result{EntityID: *item.EntityID, Action: models.AuditActionUpdate, Before: before, After: after}, nil
}
