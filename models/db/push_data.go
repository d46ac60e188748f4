package dbmodels

import "erm-backend/models"

// PushData - не доставленные пуш-события для отключённых пользователей.
type PushData struct {
	BaseModel
	UserID string          `gorm:"type:varchar(36);index:idx_user"`
	Code   models.PushCode `gorm:"type:varchar(255)"`
	Msg    string
	Title  string
}
