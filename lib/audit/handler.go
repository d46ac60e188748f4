package audithandler

import (
	"gorm.io/gorm"

	"erm-backend/db"
	"erm-backend/lib/apperr"
	auditstore "erm-backend/lib/audit/store"
	applyhandler "erm-backend/lib/workflow/apply"
	"erm-backend/models"
	auditapimodels "erm-backend/models/api/audit"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	// Record пишет запись аудита о применённом изменении.
	// Ошибка записи фатальна: транзакция согласования откатывается целиком.
	Record(requestedBy string, entityType models.EntityType, result applyhandler.Result) error
	List(entityType models.EntityType, entityID string) (list []auditapimodels.AuditView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(db.DB)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: auditstore.NewInstance(tx),
	}
}

type impl struct {
	store auditstore.Provider
}

func (i impl) Record(requestedBy string, entityType models.EntityType, result applyhandler.Result) error {
	_, err := i.store.Create(dbmodels.AuditLog{
		EntityType: entityType,
		EntityID:   result.EntityID,
		UserID:     requestedBy,
		Action:     result.Action,
		Before:     result.Before,
		After:      result.After,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindDependency, err, "не удалось записать журнал аудита")
	}
	return nil
}

func (i impl) List(entityType models.EntityType, entityID string) ([]auditapimodels.AuditView, error) {
	recs, err := i.store.List(entityType, entityID)
	if err != nil {
		return nil, err
	}
	list := make([]auditapimodels.AuditView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, auditapimodels.AuditConvert(rec))
	}
	return list, nil
}
