package workflowstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowItem) (id string, err error)
	GetByID(id string) (rec *dbmodels.WorkflowItem, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateWithStateCheck обновляет заявку, только если её состояние
	// совпадает с прочитанным ранее (оптимистическая блокировка).
	UpdateWithStateCheck(id string, expected models.WorkflowState, updMap map[string]interface{}) (updated bool, err error)
	ListAssigned(userID string) (list []dbmodels.WorkflowItem, err error)
	ListOriginatedActive(userID string) (list []dbmodels.WorkflowItem, err error)
	ListActive() (list []dbmodels.WorkflowItem, err error)
	CountAssigned(userID string) (count int64, err error)
	CountOriginatedActive(userID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

var terminalStates = []models.WorkflowState{models.WfStateApproved, models.WfStateRejected}

func (i impl) Create(rec dbmodels.WorkflowItem) (id string, err error) {
	err = i.db.
		Omit("Department", "Requester", "Assignee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.WorkflowItem, error) {
	rec := dbmodels.WorkflowItem{}
	err := i.db.
		Where("id = ?", id).
		Preload("Department").
		Preload("Requester").
		Preload("Assignee").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.WorkflowItem{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateWithStateCheck(id string, expected models.WorkflowState, updMap map[string]interface{}) (updated bool, err error) {
	if len(updMap) == 0 {
		return false, nil
	}
	tx := i.db.
		Model(&dbmodels.WorkflowItem{}).
		Where("id = ?", id).
		Where("state = ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) ListAssigned(userID string) (list []dbmodels.WorkflowItem, err error) {
	list = []dbmodels.WorkflowItem{}
	err = i.db.
		Where("assigned_to = ?", userID).
		Order("updated_at DESC").
		Preload("Department").
		Preload("Requester").
		Preload("Assignee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListOriginatedActive(userID string) (list []dbmodels.WorkflowItem, err error) {
	list = []dbmodels.WorkflowItem{}
	err = i.db.
		Where("requested_by = ?", userID).
		Where("state NOT IN ?", terminalStates).
		Order("updated_at DESC").
		Preload("Department").
		Preload("Requester").
		Preload("Assignee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActive() (list []dbmodels.WorkflowItem, err error) {
	list = []dbmodels.WorkflowItem{}
	err = i.db.
		Where("state NOT IN ?", terminalStates).
		Order("updated_at DESC").
		Preload("Department").
		Preload("Requester").
		Preload("Assignee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountAssigned(userID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.WorkflowItem{}).
		Where("assigned_to = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) CountOriginatedActive(userID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.WorkflowItem{}).
		Where("requested_by = ?", userID).
		Where("state NOT IN ?", terminalStates).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
