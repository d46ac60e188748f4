package settingsstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AppSetting) (id string, err error)
	GetByKey(key string) (rec *dbmodels.AppSetting, err error)
	UpdateByKey(key string, updMap map[string]interface{}) error
	List() (list []dbmodels.AppSetting, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AppSetting) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByKey(key string) (*dbmodels.AppSetting, error) {
	rec := dbmodels.AppSetting{}
	err := i.db.
		Where("key = ?", key).
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

func (i impl) UpdateByKey(key string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.AppSetting{}).
		Where("key = ?", key).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.AppSetting, err error) {
	list = []dbmodels.AppSetting{}
	err = i.db.
		Order("key ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
