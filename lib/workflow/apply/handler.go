package applyhandler

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	actionstore "erm-backend/lib/action/store"
	deptknowledgestore "erm-backend/lib/dept-knowledge/store"
	categorystore "erm-backend/lib/dicts/category/store"
	departmentstore "erm-backend/lib/dicts/department/store"
	riskstore "erm-backend/lib/risk/store"
	settingsstore "erm-backend/lib/settings/store"
	usersstore "erm-backend/lib/users/store"

	"erm-backend/lib/apperr"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

// Result - данные применённого изменения для записи в журнал аудита.
type Result struct {
	EntityID string
	Action   models.AuditAction
	Before   dbmodels.Snapshot
	After    dbmodels.Snapshot
}

type Provider interface {
	// Validate проверяет полезную нагрузку заявки до её принятия.
	Validate(entityType models.EntityType, entityID *string, diff dbmodels.PayloadDiff) error
	// Apply применяет согласованное изменение к целевой сущности.
	Apply(item dbmodels.WorkflowItem) (Result, error)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		riskStore:       riskstore.NewInstance(tx),
		actionStore:     actionstore.NewInstance(tx),
		departmentStore: departmentstore.NewInstance(tx),
		categoryStore:   categorystore.NewInstance(tx),
		knowledgeStore:  deptknowledgestore.NewInstance(tx),
		settingsStore:   settingsstore.NewInstance(tx),
		usersStore:      usersstore.NewInstance(tx),
	}
}

type impl struct {
	riskStore       riskstore.Provider
	actionStore     actionstore.Provider
	departmentStore departmentstore.Provider
	categoryStore   categorystore.Provider
	knowledgeStore  deptknowledgestore.Provider
	settingsStore   settingsstore.Provider
	usersStore      usersstore.Provider
}

func (i impl) Validate(entityType models.EntityType, entityID *string, diff dbmodels.PayloadDiff) error {
	switch entityType {
	case models.EntityRisk:
		return i.validateRisk(entityID, diff)
	case models.EntityAction:
		return i.validateAction(entityID, diff)
	case models.EntityDepartment:
		return i.validateDepartment(entityID, diff)
	case models.EntityDeptKnowledge:
		return i.validateKnowledge(entityID, diff)
	case models.EntityCategory:
		return i.validateCategory(entityID, diff)
	case models.EntitySubcategory:
		return i.validateSubcategory(entityID, diff)
	case models.EntityConfig:
		return i.validateSetting(diff)
	default:
		return apperr.Newf(apperr.KindValidation, "неизвестный тип сущности: %v", entityType)
	}
}

func (i impl) Apply(item dbmodels.WorkflowItem) (Result, error) {
	switch item.EntityType {
	case models.EntityRisk:
		return i.applyRisk(item)
	case models.EntityAction:
		return i.applyAction(item)
	case models.EntityDepartment:
		return i.applyDepartment(item)
	case models.EntityDeptKnowledge:
		return i.applyKnowledge(item)
	case models.EntityCategory:
		return i.applyCategory(item)
	case models.EntitySubcategory:
		return i.applySubcategory(item)
	case models.EntityConfig:
		return i.applySetting(item)
	default:
		return Result{}, apperr.Newf(apperr.KindValidation, "неизвестный тип сущности: %v", item.EntityType)
	}
}

func strField(diff dbmodels.PayloadDiff, key string) (string, bool) {
	v, ok := diff[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// strPtrField: ключ присутствует; nil при null или пустой строке.
func strPtrField(diff dbmodels.PayloadDiff, key string) (*string, bool) {
	v, ok := diff[key]
	if !ok {
		return nil, false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil, true
	}
	return &s, true
}

func intField(diff dbmodels.PayloadDiff, key string) (int, bool) {
	v, ok := diff[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	default:
		return 0, false
	}
}

func timeField(diff dbmodels.PayloadDiff, key string) (*time.Time, bool) {
	s, ok := strField(diff, key)
	if !ok || s == "" {
		_, present := diff[key]
		return nil, present
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, true
	}
	return &parsed, true
}

func snapshotOf(rec interface{}) (dbmodels.Snapshot, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	snap := dbmodels.Snapshot{}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
