package dbmodels

import (
	"github.com/pkg/errors"
)

type Department struct {
	BaseModel
	Name       string  `gorm:"type:varchar(255)"`
	ParentID   string  `gorm:"type:varchar(36);index"`
	HeadUserID *string `gorm:"type:varchar(36)"`
}

func (d *Department) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}
