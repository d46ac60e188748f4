package dbmodels

type RiskStatus string

const (
	RiskStatusActive   RiskStatus = "ACTIVE"
	RiskStatusAccepted RiskStatus = "ACCEPTED"
	RiskStatusClosed   RiskStatus = "CLOSED"
)

type Risk struct {
	BaseModel
	Title         string `gorm:"type:varchar(255)"`
	Description   string
	DepartmentID  *string     `gorm:"type:varchar(36);index"`
	Department    *Department `gorm:"foreignKey:DepartmentID"`
	CategoryID    *string     `gorm:"type:varchar(36)"`
	SubcategoryID *string     `gorm:"type:varchar(36)"`
	OwnerUserID   *string     `gorm:"type:varchar(36)"`
	Likelihood    int         // вероятность 1..5
	Impact        int         // воздействие 1..5
	Level         int         // вероятность * воздействие
	Status        RiskStatus  `gorm:"type:varchar(50);default:ACTIVE"`
}
