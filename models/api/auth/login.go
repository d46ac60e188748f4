package authapimodels

import (
	"github.com/pkg/errors"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l LoginData) Validate() error {
	if l.Email == "" {
		return errors.New("не указана почта")
	}
	if l.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type LoginView struct {
	AccessToken string      `json:"access_token"`
	Profile     ProfileView `json:"profile"`
}

type ProfileView struct {
	ID             string   `json:"id"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	RoleName       string   `json:"role_name"`
	DepartmentID   string   `json:"department_id,omitempty"`
	DepartmentName string   `json:"department_name,omitempty"`
	Departments    []string `json:"departments,omitempty"`
}
