package initializers

import (
	"erm-backend/config"
	"erm-backend/db"
	authutils "erm-backend/lib/utils/auth-utils"
)

func InitDBConnection() {
	err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
		config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}

	err = db.SeedDB(config.Conf.Admin.Email, authutils.HashPassword(config.Conf.Admin.Password))
	if err != nil {
		panic(err.Error())
	}
}
