package dbmodels

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RiskCategory struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
}

func (c *RiskCategory) AfterDelete(tx *gorm.DB) (err error) {
	if c.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("category_id = ?", c.ID).Delete(&RiskSubcategory{})
	return
}

func (c *RiskCategory) Validate() error {
	if c.Name == "" {
		return errors.New("не указано название категории")
	}
	return nil
}

type RiskSubcategory struct {
	BaseModel
	CategoryID string        `gorm:"type:varchar(36);index"`
	Category   *RiskCategory `gorm:"foreignKey:CategoryID"`
	Name       string        `gorm:"type:varchar(255)"`
}
