package actionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RiskAction) (id string, err error)
	GetByID(id string) (rec *dbmodels.RiskAction, err error)
	Update(id string, updMap map[string]interface{}) error
	ListByRisk(riskID string) (list []dbmodels.RiskAction, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RiskAction) (id string, err error) {
	err = i.db.
		Omit("Risk", "AssignedUser", "AssignedDepartment").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RiskAction, error) {
	rec := dbmodels.RiskAction{}
	err := i.db.
		Where("id = ?", id).
		Preload("AssignedUser").
		Preload("AssignedDepartment").
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
		Model(&dbmodels.RiskAction{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByRisk(riskID string) (list []dbmodels.RiskAction, err error) {
	list = []dbmodels.RiskAction{}
	err = i.db.
		Where("risk_id = ?", riskID).
		Order("created_at ASC").
		Preload("AssignedUser").
		Preload("AssignedDepartment").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
