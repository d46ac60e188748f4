package models

type UserRole string

const (
	AdminRole        UserRole = "ADMIN"
	ExecutiveRole    UserRole = "EXECUTIVE"
	RiskChampionRole UserRole = "RISK_CHAMPION"
	RiskOwnerRole    UserRole = "RISK_OWNER"
	TeamMemberRole   UserRole = "TEAM_MEMBER"
)

var roleHumanName = map[UserRole]string{
	AdminRole:        "Администратор",
	ExecutiveRole:    "Руководитель",
	RiskChampionRole: "Риск-координатор",
	RiskOwnerRole:    "Владелец риска",
	TeamMemberRole:   "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

const SystemUser = "Система"
