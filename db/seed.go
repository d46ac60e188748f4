package db

import (
	log "github.com/sirupsen/logrus"

	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

// SeedDB создаёт администратора и настройки по умолчанию в пустой базе.
func SeedDB(adminEmail, adminPasswordHash string) error {
	var usersCount int64
	if err := DB.Model(&dbmodels.User{}).Count(&usersCount).Error; err != nil {
		return err
	}
	if usersCount == 0 {
		admin := dbmodels.User{
			FirstName: "Администратор",
			Email:     adminEmail,
			Password:  adminPasswordHash,
			IsActive:  true,
			Role:      models.AdminRole,
		}
		if err := DB.Create(&admin).Error; err != nil {
			return err
		}
		log.WithField("email", adminEmail).Info("Создан пользователь-администратор")
	}

	defaults := []dbmodels.AppSetting{
		{Key: "risk.level.low", Value: "6", Description: "Верхняя граница низкого уровня риска"},
		{Key: "risk.level.high", Value: "15", Description: "Нижняя граница высокого уровня риска"},
		{Key: "notify.email.enabled", Value: "true", Description: "Отправка почтовых уведомлений"},
	}
	for _, setting := range defaults {
		var count int64
		if err := DB.Model(&dbmodels.AppSetting{}).Where("key = ?", setting.Key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}
