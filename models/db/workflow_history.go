package dbmodels

import (
	"erm-backend/models"
)

// WorkflowHistory - неизменяемая запись об одном переходе заявки.
// Записи только добавляются, движок их никогда не изменяет и не удаляет.
type WorkflowHistory struct {
	BaseModel
	ItemID      string                `gorm:"type:varchar(36);index"`
	Item        *WorkflowItem         `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	ActorUserID string                `gorm:"type:varchar(36)"`
	Actor       *User                 `gorm:"foreignKey:ActorUserID"`
	Action      models.WorkflowAction `gorm:"type:varchar(50)"`
	Comment     string
	FromState   models.WorkflowState `gorm:"type:varchar(50)"`
	ToState     models.WorkflowState `gorm:"type:varchar(50)"`
}
