package riskstore

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	riskapimodels "erm-backend/models/api/risk"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Risk) (id string, err error)
	GetByID(id string) (rec *dbmodels.Risk, err error)
	Update(id string, updMap map[string]interface{}) error
	List(filter riskapimodels.RiskFilter) (list []dbmodels.Risk, err error)
	ListCount(filter riskapimodels.RiskFilter) (count int64, err error)
	ListAll() (list []dbmodels.Risk, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Risk) (id string, err error) {
	err = i.db.
		Omit("Department").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Risk, error) {
	rec := dbmodels.Risk{}
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
		Model(&dbmodels.Risk{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) withFilter(filter riskapimodels.RiskFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.Risk{})
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.CategoryID != "" {
		tx = tx.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		tx = tx.Where("lower(title) LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}
	return tx
}

func (i impl) List(filter riskapimodels.RiskFilter) (list []dbmodels.Risk, err error) {
	list = []dbmodels.Risk{}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = i.withFilter(filter).
		Order("level DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("Department").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter riskapimodels.RiskFilter) (count int64, err error) {
	err = i.withFilter(filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListAll() (list []dbmodels.Risk, err error) {
	list = []dbmodels.Risk{}
	err = i.db.
		Order("level DESC, created_at DESC").
		Preload("Department").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
