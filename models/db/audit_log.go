package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"erm-backend/models"
)

// Snapshot - полный снимок сущности до/после изменения.
type Snapshot map[string]interface{}

func (j Snapshot) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *Snapshot) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// AuditLog - запись о применённом изменении сущности.
// Создаётся ровно один раз на каждое согласование, изменившее сущность;
// актор - автор заявки, а не согласовавший.
type AuditLog struct {
	BaseModel
	EntityType models.EntityType  `gorm:"type:varchar(50);index"`
	EntityID   string             `gorm:"type:varchar(255);index"`
	UserID     string             `gorm:"type:varchar(36);index"`
	User       *User              `gorm:"foreignKey:UserID"`
	Action     models.AuditAction `gorm:"type:varchar(50)"`
	Before     Snapshot           `gorm:"type:jsonb"`
	After      Snapshot           `gorm:"type:jsonb"`
}
