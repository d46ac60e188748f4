package dbmodels

import (
	"fmt"
	"strings"

	"erm-backend/models"
)

type User struct {
	BaseModel
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	Password     string `gorm:"type:varchar(128)"`
	IsActive     bool
	Role         models.UserRole `gorm:"type:varchar(50);index"`
	DepartmentID *string         `gorm:"type:varchar(36);index"` // основное подразделение
	Department   *Department     `gorm:"foreignKey:DepartmentID"`
	Departments  []Department    `gorm:"many2many:user_departments"` // все членства
}

func (u User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
}

func (u User) InDepartment(departmentID string) bool {
	if u.DepartmentID != nil && *u.DepartmentID == departmentID {
		return true
	}
	for _, dep := range u.Departments {
		if dep.ID == departmentID {
			return true
		}
	}
	return false
}
