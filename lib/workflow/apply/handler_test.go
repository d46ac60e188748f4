package applyhandler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"erm-backend/lib/apperr"
	"erm-backend/models"
	riskapimodels "erm-backend/models/api/risk"
	dbmodels "erm-backend/models/db"
)

type fakeRiskStore struct {
	recs   map[string]*dbmodels.Risk
	nextID int
}

func newFakeRiskStore() *fakeRiskStore {
	return &fakeRiskStore{recs: map[string]*dbmodels.Risk{}}
}

func (f *fakeRiskStore) Create(rec dbmodels.Risk) (string, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("risk-%d", f.nextID)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeRiskStore) GetByID(id string) (*dbmodels.Risk, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeRiskStore) Update(id string, updMap map[string]interface{}) error {
	rec := f.recs[id]
	if v, ok := updMap["title"]; ok {
		rec.Title = v.(string)
	}
	if v, ok := updMap["description"]; ok {
		rec.Description = v.(string)
	}
	if v, ok := updMap["status"]; ok {
		rec.Status = dbmodels.RiskStatus(v.(string))
	}
	if v, ok := updMap["likelihood"]; ok {
		rec.Likelihood = v.(int)
	}
	if v, ok := updMap["impact"]; ok {
		rec.Impact = v.(int)
	}
	if v, ok := updMap["level"]; ok {
		rec.Level = v.(int)
	}
	if v, ok := updMap["owner_user_id"]; ok {
		rec.OwnerUserID = v.(*string)
	}
	if v, ok := updMap["department_id"]; ok {
		rec.DepartmentID = v.(*string)
	}
	return nil
}

func (f *fakeRiskStore) List(filter riskapimodels.RiskFilter) ([]dbmodels.Risk, error) {
	return nil, nil
}

func (f *fakeRiskStore) ListCount(filter riskapimodels.RiskFilter) (int64, error) { return 0, nil }

func (f *fakeRiskStore) ListAll() ([]dbmodels.Risk, error) { return nil, nil }

type fakeApplyDeptStore struct {
	known map[string]bool
}

func (f fakeApplyDeptStore) Create(rec dbmodels.Department) (string, error) { return rec.ID, nil }

func (f fakeApplyDeptStore) GetByID(id string) (*dbmodels.Department, error) {
	if !f.known[id] {
		return nil, nil
	}
	rec := dbmodels.Department{Name: "Подразделение"}
	rec.ID = id
	return &rec, nil
}

func (f fakeApplyDeptStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeApplyDeptStore) List() ([]dbmodels.Department, error) { return nil, nil }

type fakeCategoryStore struct {
	categories    map[string]bool
	subcategories map[string]bool
}

func (f fakeCategoryStore) CreateCategory(rec dbmodels.RiskCategory) (string, error) {
	return rec.ID, nil
}

func (f fakeCategoryStore) GetCategoryByID(id string) (*dbmodels.RiskCategory, error) {
	if !f.categories[id] {
		return nil, nil
	}
	rec := dbmodels.RiskCategory{Name: "Категория"}
	rec.ID = id
	return &rec, nil
}

func (f fakeCategoryStore) UpdateCategory(id string, updMap map[string]interface{}) error { return nil }

func (f fakeCategoryStore) ListCategories() ([]dbmodels.RiskCategory, error) { return nil, nil }

func (f fakeCategoryStore) CreateSubcategory(rec dbmodels.RiskSubcategory) (string, error) {
	return rec.ID, nil
}

func (f fakeCategoryStore) GetSubcategoryByID(id string) (*dbmodels.RiskSubcategory, error) {
	if !f.subcategories[id] {
		return nil, nil
	}
	rec := dbmodels.RiskSubcategory{Name: "Подкатегория"}
	rec.ID = id
	return &rec, nil
}

func (f fakeCategoryStore) UpdateSubcategory(id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeCategoryStore) ListSubcategories() ([]dbmodels.RiskSubcategory, error) { return nil, nil }

type fakeApplyUsersStore struct {
	known map[string]bool
}

func (f fakeApplyUsersStore) Create(rec dbmodels.User) (string, error) { return rec.ID, nil }

func (f fakeApplyUsersStore) GetByID(id string) (*dbmodels.User, error) {
	if !f.known[id] {
		return nil, nil
	}
	rec := dbmodels.User{FirstName: "Тест", IsActive: true}
	rec.ID = id
	return &rec, nil
}

func (f fakeApplyUsersStore) GetByEmail(email string) (*dbmodels.User, error) { return nil, nil }

func (f fakeApplyUsersStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeApplyUsersStore) List() ([]dbmodels.User, error) { return nil, nil }

func (f fakeApplyUsersStore) FirstActiveWithRole(role models.UserRole, departmentID string) (*dbmodels.User, error) {
	return nil, nil
}

type fakeSettingsStore struct {
	recs   map[string]*dbmodels.AppSetting
	nextID int
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{recs: map[string]*dbmodels.AppSetting{}}
}

func (f *fakeSettingsStore) Create(rec dbmodels.AppSetting) (string, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("setting-%d", f.nextID)
	f.recs[rec.Key] = &rec
	return rec.ID, nil
}

func (f *fakeSettingsStore) GetByKey(key string) (*dbmodels.AppSetting, error) {
	rec, ok := f.recs[key]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeSettingsStore) UpdateByKey(key string, updMap map[string]interface{}) error {
	rec := f.recs[key]
	if v, ok := updMap["value"]; ok {
		rec.Value = v.(string)
	}
	if v, ok := updMap["description"]; ok {
		rec.Description = v.(string)
	}
	return nil
}

func (f *fakeSettingsStore) List() ([]dbmodels.AppSetting, error) { return nil, nil }

func newTestHandler() (impl, *fakeRiskStore, *fakeSettingsStore) {
	riskStore := newFakeRiskStore()
	settingsStore := newFakeSettingsStore()
	handler := impl{
		riskStore:       riskStore,
		departmentStore: fakeApplyDeptStore{known: map[string]bool{"dept-1": true}},
		categoryStore: fakeCategoryStore{
			categories:    map[string]bool{"cat-1": true},
			subcategories: map[string]bool{"sub-1": true},
		},
		usersStore:    fakeApplyUsersStore{known: map[string]bool{"owner-1": true}},
		settingsStore: settingsStore,
	}
	return handler, riskStore, settingsStore
}

func TestValidateRisk(t *testing.T) {
	handler, riskStore, _ := newTestHandler()

	t.Run(`создание без названия`, func(t *testing.T) {
		err := handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{"description": "без названия"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`оценки вне шкалы`, func(t *testing.T) {
		err := handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{"title": "Риск", "likelihood": float64(6)})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))

		err = handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{"title": "Риск", "impact": float64(0)})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`недопустимый статус`, func(t *testing.T) {
		err := handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{"title": "Риск", "status": "UNKNOWN"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`несуществующие ссылки`, func(t *testing.T) {
		err := handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{"title": "Риск", "department_id": "dept-missing"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))

		err = handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{"title": "Риск", "category_id": "cat-missing"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))

		err = handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{"title": "Риск", "owner_user_id": "owner-missing"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`изменение несуществующего риска`, func(t *testing.T) {
		missingID := "risk-missing"
		err := handler.Validate(models.EntityRisk, &missingID, dbmodels.PayloadDiff{"title": "Риск"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run(`корректная заявка`, func(t *testing.T) {
		err := handler.Validate(models.EntityRisk, nil, dbmodels.PayloadDiff{
			"title":         "Сбой поставщика",
			"department_id": "dept-1",
			"category_id":   "cat-1",
			"owner_user_id": "owner-1",
			"likelihood":    float64(3),
			"impact":        float64(4),
		})
		require.Nil(t, err)
	})

	t.Run(`неизвестный тип сущности`, func(t *testing.T) {
		err := handler.Validate(models.EntityType("unknown"), nil, dbmodels.PayloadDiff{"title": "x"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	_ = riskStore
}

func TestApplyRisk(t *testing.T) {
	t.Run(`создание риска`, func(t *testing.T) {
		handler, riskStore, _ := newTestHandler()
		result, err := handler.Apply(dbmodels.WorkflowItem{
			EntityType: models.EntityRisk,
			PayloadDiff: dbmodels.PayloadDiff{
				"title":      "Сбой поставщика",
				"likelihood": float64(3),
				"impact":     float64(4),
			},
		})
		require.Nil(t, err)
		require.Equal(t, models.AuditActionCreate, result.Action)
		require.NotEmpty(t, result.EntityID)
		require.Nil(t, result.Before)
		require.NotNil(t, result.After)

		rec, err := riskStore.GetByID(result.EntityID)
		require.Nil(t, err)
		require.Equal(t, "Сбой поставщика", rec.Title)
		require.Equal(t, 12, rec.Level)
		require.Equal(t, dbmodels.RiskStatusActive, rec.Status)
	})

	t.Run(`изменение с пересчётом уровня`, func(t *testing.T) {
		handler, riskStore, _ := newTestHandler()
		id, err := riskStore.Create(dbmodels.Risk{
			Title:      "Сбой поставщика",
			Likelihood: 3,
			Impact:     4,
			Level:      12,
			Status:     dbmodels.RiskStatusActive,
		})
		require.Nil(t, err)

		result, err := handler.Apply(dbmodels.WorkflowItem{
			EntityType:  models.EntityRisk,
			EntityID:    &id,
			PayloadDiff: dbmodels.PayloadDiff{"impact": float64(5)},
		})
		require.Nil(t, err)
		require.Equal(t, models.AuditActionUpdate, result.Action)
		require.NotNil(t, result.Before)
		require.NotNil(t, result.After)

		rec, err := riskStore.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, 5, rec.Impact)
		require.Equal(t, 15, rec.Level)
	})
}

func TestApplySetting(t *testing.T) {
	t.Run(`валидация`, func(t *testing.T) {
		handler, _, _ := newTestHandler()
		err := handler.Validate(models.EntityConfig, nil, dbmodels.PayloadDiff{"value": "10"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))

		err = handler.Validate(models.EntityConfig, nil, dbmodels.PayloadDiff{"key": "risk.level.low"})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))

		err = handler.Validate(models.EntityConfig, nil, dbmodels.PayloadDiff{"key": "risk.level.low", "value": "10"})
		require.Nil(t, err)
	})

	t.Run(`создание по ключу`, func(t *testing.T) {
		handler, _, settingsStore := newTestHandler()
		result, err := handler.Apply(dbmodels.WorkflowItem{
			EntityType:  models.EntityConfig,
			PayloadDiff: dbmodels.PayloadDiff{"key": "risk.level.low", "value": "6"},
		})
		require.Nil(t, err)
		require.Equal(t, models.AuditActionCreate, result.Action)

		rec, err := settingsStore.GetByKey("risk.level.low")
		require.Nil(t, err)
		require.Equal(t, "6", rec.Value)
	})

	t.Run(`изменение по ключу`, func(t *testing.T) {
		handler, _, settingsStore := newTestHandler()
		_, err := settingsStore.Create(dbmodels.AppSetting{Key: "risk.level.low", Value: "6"})
		require.Nil(t, err)

		result, err := handler.Apply(dbmodels.WorkflowItem{
			EntityType:  models.EntityConfig,
			PayloadDiff: dbmodels.PayloadDiff{"key": "risk.level.low", "value": "8"},
		})
		require.Nil(t, err)
		require.Equal(t, models.AuditActionUpdate, result.Action)

		rec, err := settingsStore.GetByKey("risk.level.low")
		require.Nil(t, err)
		require.Equal(t, "8", rec.Value)
	})
}
