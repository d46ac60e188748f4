package dbmodels

import "time"

type ActionStatus string

const (
	ActionStatusPlanned    ActionStatus = "PLANNED"
	ActionStatusInProgress ActionStatus = "IN_PROGRESS"
	ActionStatusDone       ActionStatus = "DONE"
)

// RiskAction - мероприятие по снижению риска.
type RiskAction struct {
	BaseModel
	RiskID               *string `gorm:"type:varchar(36);index"`
	Risk                 *Risk   `gorm:"foreignKey:RiskID"`
	Title                string  `gorm:"type:varchar(255)"`
	Description          string
	DueDate              *time.Time
	Status               ActionStatus `gorm:"type:varchar(50);default:PLANNED"`
	AssignedUserID       *string      `gorm:"type:varchar(36)"`
	AssignedUser         *User        `gorm:"foreignKey:AssignedUserID"`
	AssignedDepartmentID *string      `gorm:"type:varchar(36);index"` // принимающее подразделение
	AssignedDepartment   *Department  `gorm:"foreignKey:AssignedDepartmentID"`
}
