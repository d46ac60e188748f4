package categorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "erm-backend/models/db"
)

type Provider interface {
	CreateCategory(rec dbmodels.RiskCategory) (id string, err error)
	GetCategoryByID(id string) (rec *dbmodels.RiskCategory, err error)
	UpdateCategory(id string, updMap map[string]interface{}) error
	ListCategories() (list []dbmodels.RiskCategory, err error)
	CreateSubcategory(rec dbmodels.RiskSubcategory) (id string, err error)
	GetSubcategoryByID(id string) (rec *dbmodels.RiskSubcategory, err error)
	UpdateSubcategory(id string, updMap map[string]interface{}) error
	ListSubcategories() (list []dbmodels.RiskSubcategory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateCategory(rec dbmodels.RiskCategory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetCategoryByID(id string) (*dbmodels.RiskCategory, error) {
	rec := dbmodels.RiskCategory{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) UpdateCategory(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.RiskCategory{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListCategories() (list []dbmodels.RiskCategory, err error) {
	list = []dbmodels.RiskCategory{}
	err = i.db.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CreateSubcategory(rec dbmodels.RiskSubcategory) (id string, err error) {
	err = i.db.
		Omit("Category").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetSubcategoryByID(id string) (*dbmodels.RiskSubcategory, error) {
	rec := dbmodels.RiskSubcategory{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) UpdateSubcategory(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.RiskSubcategory{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListSubcategories() (list []dbmodels.RiskSubcategory, err error) {
	list = []dbmodels.RiskSubcategory{}
	err = i.db.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
