package authhandler

import (
	"erm-backend/db"
	"erm-backend/lib/apperr"
	usersstore "erm-backend/lib/users/store"
	authutils "erm-backend/lib/utils/auth-utils"
	authapimodels "erm-backend/models/api/auth"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Login(data authapimodels.LoginData) (view authapimodels.LoginView, err error)
	Profile(userID string) (view authapimodels.ProfileView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) Login(data authapimodels.LoginData) (view authapimodels.LoginView, err error) {
	if err := data.Validate(); err != nil {
		return view, apperr.Wrap(apperr.KindValidation, err, err.Error())
	}
	user, err := i.usersStore.GetByEmail(data.Email)
	if err != nil {
		return view, err
	}
	if user == nil || !user.IsActive {
		return view, apperr.New(apperr.KindAuthorization, "неверная почта или пароль")
	}
	if user.Password != authutils.HashPassword(data.Password) {
		return view, apperr.New(apperr.KindAuthorization, "неверная почта или пароль")
	}
	departmentID := ""
	if user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}
	token, err := authutils.GetToken(user.ID, user.GetFullName(), departmentID, user.Role)
	if err != nil {
		return view, err
	}
	return authapimodels.LoginView{
		AccessToken: token,
		Profile:     profileConvert(*user),
	}, nil
}

func (i impl) Profile(userID string) (view authapimodels.ProfileView, err error) {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return view, err
	}
	if user == nil {
		return view, apperr.New(apperr.KindNotFound, "пользователь не найден")
	}
	return profileConvert(*user), nil
}

func profileConvert(user dbmodels.User) authapimodels.ProfileView {
	view := authapimodels.ProfileView{
		ID:       user.ID,
		FullName: user.GetFullName(),
		Email:    user.Email,
		Role:     string(user.Role),
		RoleName: user.Role.ToHuman(),
	}
	if user.DepartmentID != nil {
		view.DepartmentID = *user.DepartmentID
	}
	if user.Department != nil {
		view.DepartmentName = user.Department.Name
	}
	for _, dep := range user.Departments {
		view.Departments = append(view.Departments, dep.ID)
	}
	return view
}
