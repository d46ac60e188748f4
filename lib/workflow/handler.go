package workflowhandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"erm-backend/db"
	"erm-backend/lib/apperr"
	audithandler "erm-backend/lib/audit"
	departmentstore "erm-backend/lib/dicts/department/store"
	notifyhandler "erm-backend/lib/notify"
	usersstore "erm-backend/lib/users/store"
	initchecker "erm-backend/lib/utils/init-checker"
	"erm-backend/lib/utils/lock"
	applyhandler "erm-backend/lib/workflow/apply"
	workflowhistorystore "erm-backend/lib/workflow/history-store"
	routinghandler "erm-backend/lib/workflow/routing"
	workflowstore "erm-backend/lib/workflow/store"
	"erm-backend/models"
	workflowapimodels "erm-backend/models/api/workflow"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	// Create подаёт заявку на изменение: валидация, маршрутизация,
	// запись истории, для администратора - немедленное применение.
	Create(userID string, data workflowapimodels.WorkflowItemCreateData) (view workflowapimodels.WorkflowItemCreatedView, err error)
	// Transition выполняет действие согласующего: approve, reject или comment.
	Transition(userID, itemID string, action models.WorkflowAction, comment string) (view workflowapimodels.TransitionView, err error)
	// Reassign переназначает согласующего, доступно только администратору.
	Reassign(userID, itemID, assigneeID string) error
	GetByID(userID, itemID string) (view workflowapimodels.WorkflowItemView, err error)
	History(userID, itemID string) (list []workflowapimodels.WorkflowHistoryView, err error)
}

var Instance Provider

func NewHandler() {
	instance := &impl{
		store:        workflowstore.NewInstance(db.DB),
		historyStore: workflowhistorystore.NewInstance(db.DB),
		usersStore:   usersstore.NewInstance(db.DB),
		deptStore:    departmentstore.NewInstance(db.DB),
		routing:      routinghandler.Instance,
		validator:    applyhandler.NewHandlerWithTx(db.DB),
		notifier:     notifyhandler.Instance,
		runInTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		storeWithTx:   workflowstore.NewInstance,
		historyWithTx: workflowhistorystore.NewInstance,
		applyWithTx:   applyhandler.NewHandlerWithTx,
		auditWithTx:   audithandler.NewHandlerWithTx,
	}
	initchecker.CheckInit(
		"routing", instance.routing,
		"notifier", instance.notifier,
	)
	Instance = instance
}

const lockWait = 3 * time.Second

func lockKey(itemID string) string {
	return "workflow_item:" + itemID
}

type impl struct {
	store        workflowstore.Provider
	historyStore workflowhistorystore.Provider
	usersStore   usersstore.Provider
	deptStore    departmentstore.Provider
	routing      routinghandler.Provider
	validator    applyhandler.Provider
	notifier     notifyhandler.Provider

	runInTx       func(fn func(tx *gorm.DB) error) error
	storeWithTx   func(tx *gorm.DB) workflowstore.Provider
	historyWithTx func(tx *gorm.DB) workflowhistorystore.Provider
	applyWithTx   func(tx *gorm.DB) applyhandler.Provider
	auditWithTx   func(tx *gorm.DB) audithandler.Provider
}

func (i *impl) getLogger(userID, itemID string) *log.Entry {
	return log.
		WithField("user_id", userID).
		WithField("item_id", itemID)
}

func (i *impl) Create(userID string, data workflowapimodels.WorkflowItemCreateData) (view workflowapimodels.WorkflowItemCreatedView, err error) {
	logger := log.
		WithField("user_id", userID).
		WithField("entity_type", data.EntityType)
	if err := data.Validate(); err != nil {
		return view, apperr.Wrap(apperr.KindValidation, err, err.Error())
	}
	user, err := i.getActor(userID)
	if err != nil {
		return view, err
	}

	var entityID *string
	if data.EntityID != "" {
		entityID = &data.EntityID
	}
	if err := i.validator.Validate(data.EntityType, entityID, data.PayloadDiff); err != nil {
		return view, err
	}

	departmentID, err := i.resolveDepartment(user, data)
	if err != nil {
		return view, err
	}
	route, err := i.routing.RouteInitial(*user, data.EntityType, data.PayloadDiff)
	if err != nil {
		return view, err
	}

	rec := dbmodels.WorkflowItem{
		EntityType:   data.EntityType,
		EntityID:     entityID,
		DepartmentID: departmentID,
		PayloadDiff:  data.PayloadDiff,
		State:        route.State,
		RequestedBy:  userID,
		Comment:      data.Comment,
	}
	if route.Assignee != nil {
		assigneeID := route.Assignee.ID
		rec.AssignedTo = &assigneeID
	}

	err = i.runInTx(func(tx *gorm.DB) error {
		id, err := i.storeWithTx(tx).Create(rec)
		if err != nil {
			return err
		}
		rec.ID = id
		_, err = i.historyWithTx(tx).Create(dbmodels.WorkflowHistory{
			ItemID:      id,
			ActorUserID: userID,
			Action:      models.WfActionSubmit,
			Comment:     data.Comment,
			FromState:   models.WfStateDraft,
			ToState:     route.State,
		})
		if err != nil {
			return err
		}
		if route.State == models.WfStateApproved {
			result, err := i.applyWithTx(tx).Apply(rec)
			if err != nil {
				return err
			}
			return i.auditWithTx(tx).Record(userID, rec.EntityType, result)
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка подачи заявки")
		return view, err
	}

	if i.notifier != nil && rec.AssignedTo != nil {
		i.notifier.ItemAssigned(rec, *rec.AssignedTo)
	}
	return workflowapimodels.WorkflowItemCreatedView{ID: rec.ID, State: rec.State}, nil
}

func (i *impl) Transition(userID, itemID string, action models.WorkflowAction, comment string) (view workflowapimodels.TransitionView, err error) {
	logger := i.getLogger(userID, itemID).WithField("action", action)
	switch action {
	case models.WfActionApprove, models.WfActionReject, models.WfActionComment:
	default:
		return view, apperr.Newf(apperr.KindValidation, "недопустимое действие: %v", action)
	}
	comment = strings.TrimSpace(comment)
	if action == models.WfActionReject && comment == "" {
		return view, apperr.New(apperr.KindValidation, "при отклонении комментарий обязателен")
	}
	if action == models.WfActionComment && comment == "" {
		return view, apperr.New(apperr.KindValidation, "не указан текст комментария")
	}
	user, err := i.getActor(userID)
	if err != nil {
		return view, err
	}

	var resultState models.WorkflowState
	locked, err := lock.WithDelay(context.Background(), lockKey(itemID), lockWait, func() error {
		item, err := i.store.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.New(apperr.KindNotFound, "заявка не найдена")
		}
		if err := checkActor(*user, *item); err != nil {
			return err
		}
		switch action {
		case models.WfActionComment:
			resultState, err = i.doComment(*user, *item, comment)
		case models.WfActionReject:
			resultState, err = i.doReject(*user, *item, comment)
		default:
			resultState, err = i.doApprove(*user, *item, comment)
		}
		return err
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обработки заявки")
		return view, err
	}
	if !locked {
		return view, apperr.New(apperr.KindConflict, "заявка обрабатывается другим пользователем, повторите позже")
	}
	return workflowapimodels.TransitionView{State: resultState}, nil
}

func (i *impl) Reassign(userID, itemID, assigneeID string) error {
	logger := i.getLogger(userID, itemID)
	user, err := i.getActor(userID)
	if err != nil {
		return err
	}
	if !user.Role.IsAdmin() {
		return apperr.New(apperr.KindAuthorization, "переназначение доступно только администратору")
	}
	target, err := i.usersStore.GetByID(assigneeID)
	if err != nil {
		return err
	}
	if target == nil || !target.IsActive {
		return apperr.New(apperr.KindValidation, "указанный согласующий не найден или заблокирован")
	}

	var reassigned dbmodels.WorkflowItem
	locked, err := lock.WithDelay(context.Background(), lockKey(itemID), lockWait, func() error {
		item, err := i.store.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.New(apperr.KindNotFound, "заявка не найдена")
		}
		if item.State.IsTerminal() {
			return apperr.New(apperr.KindValidation, "заявка уже в конечном состоянии")
		}
		err = i.runInTx(func(tx *gorm.DB) error {
			updated, err := i.storeWithTx(tx).UpdateWithStateCheck(item.ID, item.State, map[string]interface{}{
				"assigned_to": assigneeID,
			})
			if err != nil {
				return err
			}
			if !updated {
				return apperr.New(apperr.KindConflict, "состояние заявки изменилось, обновите данные и повторите")
			}
			_, err = i.historyWithTx(tx).Create(dbmodels.WorkflowHistory{
				ItemID:      item.ID,
				ActorUserID: userID,
				Action:      models.WfActionReassign,
				Comment:     fmt.Sprintf("Назначен согласующим: %s", target.GetFullName()),
				FromState:   item.State,
				ToState:     item.State,
			})
			return err
		})
		if err != nil {
			return err
		}
		reassigned = *item
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка переназначения заявки")
		return err
	}
	if !locked {
		return apperr.New(apperr.KindConflict, "заявка обрабатывается другим пользователем, повторите позже")
	}
	if i.notifier != nil {
		i.notifier.ItemAssigned(reassigned, assigneeID)
	}
	return nil
}

func (i *impl) GetByID(userID, itemID string) (view workflowapimodels.WorkflowItemView, err error) {
	user, err := i.getActor(userID)
	if err != nil {
		return view, err
	}
	item, err := i.store.GetByID(itemID)
	if err != nil {
		return view, err
	}
	if item == nil {
		return view, apperr.New(apperr.KindNotFound, "заявка не найдена")
	}
	if err := checkReader(*user, *item); err != nil {
		return view, err
	}
	view = workflowapimodels.WorkflowItemConvert(*item)
	counts, err := i.historyStore.CommentsCountByItem([]string{itemID})
	if err != nil {
		return view, err
	}
	view.CommentsCount = counts[itemID]
	return view, nil
}

func (i *impl) History(userID, itemID string) ([]workflowapimodels.WorkflowHistoryView, error) {
	user, err := i.getActor(userID)
	if err != nil {
		return nil, err
	}
	item, err := i.store.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.New(apperr.KindNotFound, "заявка не найдена")
	}
	if err := checkReader(*user, *item); err != nil {
		return nil, err
	}
	recs, err := i.historyStore.List(itemID)
	if err != nil {
		return nil, err
	}
	list := make([]workflowapimodels.WorkflowHistoryView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, workflowapimodels.WorkflowHistoryConvert(rec))
	}
	return list, nil
}

func (i *impl) doComment(actor dbmodels.User, item dbmodels.WorkflowItem, comment string) (models.WorkflowState, error) {
	// комментарий не меняет состояние и разрешён даже для закрытых заявок
	err := i.runInTx(func(tx *gorm.DB) error {
		_, err := i.historyWithTx(tx).Create(dbmodels.WorkflowHistory{
			ItemID:      item.ID,
			ActorUserID: actor.ID,
			Action:      models.WfActionComment,
			Comment:     comment,
			FromState:   item.State,
			ToState:     item.State,
		})
		if err != nil {
			return err
		}
		return i.storeWithTx(tx).Update(item.ID, map[string]interface{}{
			"comment": comment,
		})
	})
	if err != nil {
		return item.State, err
	}
	if i.notifier != nil && actor.ID != item.RequestedBy {
		i.notifier.ItemCommented(item, actor.GetFullName(), comment)
	}
	return item.State, nil
}

func (i *impl) doReject(actor dbmodels.User, item dbmodels.WorkflowItem, comment string) (models.WorkflowState, error) {
	if item.State.IsTerminal() {
		return item.State, apperr.New(apperr.KindValidation, "заявка уже в конечном состоянии")
	}
	err := i.runInTx(func(tx *gorm.DB) error {
		updated, err := i.storeWithTx(tx).UpdateWithStateCheck(item.ID, item.State, map[string]interface{}{
			"state":       models.WfStateRejected,
			"assigned_to": nil,
			"comment":     comment,
		})
		if err != nil {
			return err
		}
		if !updated {
			return apperr.New(apperr.KindConflict, "состояние заявки изменилось, обновите данные и повторите")
		}
		_, err = i.historyWithTx(tx).Create(dbmodels.WorkflowHistory{
			ItemID:      item.ID,
			ActorUserID: actor.ID,
			Action:      models.WfActionReject,
			Comment:     comment,
			FromState:   item.State,
			ToState:     models.WfStateRejected,
		})
		return err
	})
	if err != nil {
		return item.State, err
	}
	item.State = models.WfStateRejected
	if i.notifier != nil {
		i.notifier.ItemResolved(item)
	}
	return models.WfStateRejected, nil
}

func (i *impl) doApprove(actor dbmodels.User, item dbmodels.WorkflowItem, comment string) (models.WorkflowState, error) {
	if item.State.IsTerminal() {
		return item.State, apperr.New(apperr.KindValidation, "заявка уже в конечном состоянии")
	}
	route, err := i.routing.RouteApprove(item)
	if err != nil {
		return item.State, err
	}

	updMap := map[string]interface{}{
		"state": route.State,
	}
	if comment != "" {
		updMap["comment"] = comment
	}
	var nextAssignee *string
	if route.State == models.WfStateApproved {
		updMap["assigned_to"] = nil
	} else if route.Assignee != nil {
		assigneeID := route.Assignee.ID
		nextAssignee = &assigneeID
		updMap["assigned_to"] = assigneeID
	} else {
		updMap["assigned_to"] = nil
	}

	err = i.runInTx(func(tx *gorm.DB) error {
		updated, err := i.storeWithTx(tx).UpdateWithStateCheck(item.ID, item.State, updMap)
		if err != nil {
			return err
		}
		if !updated {
			return apperr.New(apperr.KindConflict, "состояние заявки изменилось, обновите данные и повторите")
		}
		_, err = i.historyWithTx(tx).Create(dbmodels.WorkflowHistory{
			ItemID:      item.ID,
			ActorUserID: actor.ID,
			Action:      models.WfActionApprove,
			Comment:     comment,
			FromState:   item.State,
			ToState:     route.State,
		})
		if err != nil {
			return err
		}
		if route.State == models.WfStateApproved {
			result, err := i.applyWithTx(tx).Apply(item)
			if err != nil {
				return err
			}
			return i.auditWithTx(tx).Record(item.RequestedBy, item.EntityType, result)
		}
		return nil
	})
	if err != nil {
		return item.State, err
	}

	item.State = route.State
	if i.notifier != nil {
		if route.State == models.WfStateApproved {
			i.notifier.ItemResolved(item)
		} else if nextAssignee != nil {
			i.notifier.ItemAssigned(item, *nextAssignee)
		}
	}
	return route.State, nil
}

func (i *impl) getActor(userID string) (*dbmodels.User, error) {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperr.New(apperr.KindAuthorization, "пользователь не найден или заблокирован")
	}
	return user, nil
}

// resolveDepartment определяет подразделение-контекст заявки:
// явно указанное, принимающее подразделение мероприятия, подразделение
// из данных, иначе основное подразделение автора.
// Для глобальных справочников контекст отсутствует.
func (i *impl) resolveDepartment(user *dbmodels.User, data workflowapimodels.WorkflowItemCreateData) (*string, error) {
	if data.DepartmentID != "" {
		rec, err := i.deptStore.GetByID(data.DepartmentID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, apperr.New(apperr.KindValidation, "указанное подразделение не существует")
		}
		departmentID := data.DepartmentID
		return &departmentID, nil
	}
	switch data.EntityType {
	case models.EntityCategory, models.EntitySubcategory, models.EntityConfig:
		return nil, nil
	}
	if data.EntityType == models.EntityAction {
		if v, ok := data.PayloadDiff["assigned_department_id"].(string); ok && v != "" {
			return &v, nil
		}
	}
	if v, ok := data.PayloadDiff["department_id"].(string); ok && v != "" {
		return &v, nil
	}
	return user.DepartmentID, nil
}

func checkActor(user dbmodels.User, item dbmodels.WorkflowItem) error {
	if user.Role.IsAdmin() {
		return nil
	}
	if item.AssignedTo != nil && *item.AssignedTo == user.ID {
		return nil
	}
	return apperr.New(apperr.KindAuthorization, "действие доступно назначенному согласующему или администратору")
}

func checkReader(user dbmodels.User, item dbmodels.WorkflowItem) error {
	if user.Role.IsAdmin() || item.RequestedBy == user.ID {
		return nil
	}
	if item.AssignedTo != nil && *item.AssignedTo == user.ID {
		return nil
	}
	return apperr.New(apperr.KindAuthorization, "нет доступа к заявке")
}
