package dbmodels

// AppSetting - конфигурационная запись ключ/значение.
// В цепочке согласования сопоставляется по логическому ключу, а не по ID.
type AppSetting struct {
	BaseModel
	Key         string `gorm:"type:varchar(255);uniqueIndex"`
	Value       string
	Description string
}
