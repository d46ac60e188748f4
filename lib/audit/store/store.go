package auditstore

import (
	"gorm.io/gorm"

	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AuditLog) (id string, err error)
	List(entityType models.EntityType, entityID string) (list []dbmodels.AuditLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AuditLog) (id string, err error) {
	err = i.db.
		Omit("User").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(entityType models.EntityType, entityID string) (list []dbmodels.AuditLog, err error) {
	list = []dbmodels.AuditLog{}
	err = i.db.
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
