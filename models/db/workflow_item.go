package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"erm-backend/models"
)

// PayloadDiff - частичное обновление либо полные данные создаваемой сущности.
// Для движка согласования содержимое непрозрачно, валидируется
// типовыми валидаторами до принятия заявки.
type PayloadDiff map[string]interface{}

func (j PayloadDiff) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *PayloadDiff) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// WorkflowItem - заявка на создание/изменение сущности.
type WorkflowItem struct {
	BaseModel
	EntityType   models.EntityType `gorm:"type:varchar(50);index"`
	EntityID     *string           `gorm:"type:varchar(36);index"` // nil - создание новой сущности
	DepartmentID *string           `gorm:"type:varchar(36);index"`
	Department   *Department       `gorm:"foreignKey:DepartmentID"`
	PayloadDiff  PayloadDiff       `gorm:"type:jsonb"`
	State        models.WorkflowState `gorm:"type:varchar(50);index"`
	RequestedBy  string               `gorm:"type:varchar(36);index"`
	Requester    *User                `gorm:"foreignKey:RequestedBy"`
	AssignedTo   *string              `gorm:"type:varchar(36);index"`
	Assignee     *User                `gorm:"foreignKey:AssignedTo"`
	Comment      string
}
