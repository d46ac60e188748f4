package dbmodels

// FileStorage - запись о вложении, сохранённом в S3.
type FileStorage struct {
	BaseModel
	RiskID      string `gorm:"type:varchar(36);index"`
	Name        string `gorm:"type:varchar(255)"`
	ContentType string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(255)"`
	Size        int64
}
