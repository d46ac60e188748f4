package inboxhandler

import (
	"erm-backend/db"
	"erm-backend/lib/apperr"
	usersstore "erm-backend/lib/users/store"
	workflowhistorystore "erm-backend/lib/workflow/history-store"
	workflowstore "erm-backend/lib/workflow/store"
	workflowapimodels "erm-backend/models/api/workflow"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	// Inbox - заявки, назначенные на пользователя.
	Inbox(userID string) (list []workflowapimodels.WorkflowItemView, err error)
	// Originated - незакрытые заявки, поданные пользователем.
	Originated(userID string) (list []workflowapimodels.WorkflowItemView, err error)
	Counts(userID string) (view workflowapimodels.CountsView, err error)
	// GlobalQueue - все незакрытые заявки, только для администратора.
	GlobalQueue(userID string) (list []workflowapimodels.WorkflowItemView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        workflowstore.NewInstance(db.DB),
		historyStore: workflowhistorystore.NewInstance(db.DB),
		usersStore:   usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store        workflowstore.Provider
	historyStore workflowhistorystore.Provider
	usersStore   usersstore.Provider
}

func (i impl) Inbox(userID string) ([]workflowapimodels.WorkflowItemView, error) {
	recs, err := i.store.ListAssigned(userID)
	if err != nil {
		return nil, err
	}
	return i.convertList(recs)
}

func (i impl) Originated(userID string) ([]workflowapimodels.WorkflowItemView, error) {
	recs, err := i.store.ListOriginatedActive(userID)
	if err != nil {
		return nil, err
	}
	return i.convertList(recs)
}

func (i impl) Counts(userID string) (view workflowapimodels.CountsView, err error) {
	assigned, err := i.store.CountAssigned(userID)
	if err != nil {
		return view, err
	}
	originated, err := i.store.CountOriginatedActive(userID)
	if err != nil {
		return view, err
	}
	return workflowapimodels.CountsView{
		Assigned:   assigned,
		Originated: originated,
	}, nil
}

func (i impl) GlobalQueue(userID string) ([]workflowapimodels.WorkflowItemView, error) {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Role.IsAdmin() {
		return nil, apperr.New(apperr.KindAuthorization, "общая очередь доступна только администратору")
	}
	recs, err := i.store.ListActive()
	if err != nil {
		return nil, err
	}
	return i.convertList(recs)
}

func (i impl) convertList(recs []dbmodels.WorkflowItem) ([]workflowapimodels.WorkflowItemView, error) {
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	counts, err := i.historyStore.CommentsCountByItem(ids)
	if err != nil {
		return nil, err
	}
	list := make([]workflowapimodels.WorkflowItemView, 0, len(recs))
	for _, rec := range recs {
		view := workflowapimodels.WorkflowItemConvert(rec)
		view.CommentsCount = counts[rec.ID]
		list = append(list, view)
	}
	return list, nil
}
