package dbmodels

// DeptKnowledge - запись базы знаний подразделения.
type DeptKnowledge struct {
	BaseModel
	DepartmentID *string     `gorm:"type:varchar(36);index"`
	Department   *Department `gorm:"foreignKey:DepartmentID"`
	Title        string      `gorm:"type:varchar(255)"`
	Content      string
}
