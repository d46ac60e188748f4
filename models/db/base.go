package dbmodels

import (
	"time"
)

// BaseModel - общие поля записей. json-теги важны: снимки before/after
// для журнала аудита формируются сериализацией db-моделей.
type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
