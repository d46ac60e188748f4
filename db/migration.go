package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "erm-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.RiskCategory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RiskCategory")
	}
	if err := DB.AutoMigrate(&dbmodels.RiskSubcategory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RiskSubcategory")
	}
	if err := DB.AutoMigrate(&dbmodels.Risk{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Risk")
	}
	if err := DB.AutoMigrate(&dbmodels.RiskAction{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RiskAction")
	}
	if err := DB.AutoMigrate(&dbmodels.DeptKnowledge{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DeptKnowledge")
	}
	if err := DB.AutoMigrate(&dbmodels.AppSetting{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AppSetting")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowItem{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowItem")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.AuditLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AuditLog")
	}
	if err := DB.AutoMigrate(&dbmodels.FileStorage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FileStorage")
	}
	if err := DB.AutoMigrate(&dbmodels.PushData{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PushData")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
