package deptknowledgestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DeptKnowledge) (id string, err error)
	GetByID(id string) (rec *dbmodels.DeptKnowledge, err error)
	Update(id string, updMap map[string]interface{}) error
	ListByDepartment(departmentID string) (list []dbmodels.DeptKnowledge, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DeptKnowledge) (id string, err error) {
	err = i.db.
		Omit("Department").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.DeptKnowledge, error) {
	rec := dbmodels.DeptKnowledge{}
	err := i.db.
		Where("id = ?", id).
		Preload("Department").
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
		Model(&dbmodels.DeptKnowledge{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByDepartment(departmentID string) (list []dbmodels.DeptKnowledge, err error) {
	list = []dbmodels.DeptKnowledge{}
	err = i.db.
		Where("department_id = ?", departmentID).
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
