package usershandler

import (
	"erm-backend/db"
	"erm-backend/lib/apperr"
	usersstore "erm-backend/lib/users/store"
	authapimodels "erm-backend/models/api/auth"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	List() (list []authapimodels.ProfileView, err error)
	GetByID(id string) (view authapimodels.ProfileView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) List() ([]authapimodels.ProfileView, error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list := make([]authapimodels.ProfileView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, convert(rec))
	}
	return list, nil
}

func (i impl) GetByID(id string) (view authapimodels.ProfileView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, apperr.New(apperr.KindNotFound, "пользователь не найден")
	}
	return convert(*rec), nil
}

func convert(user dbmodels.User) authapimodels.ProfileView {
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
