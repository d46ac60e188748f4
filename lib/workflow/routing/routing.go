package routinghandler

import (
	log "github.com/sirupsen/logrus"

	"erm-backend/db"
	"erm-backend/lib/apperr"
	usersstore "erm-backend/lib/users/store"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

// Route - результат маршрутизации: состояние заявки и очередной согласующий.
type Route struct {
	State    models.WorkflowState
	Assignee *dbmodels.User // nil - подходящий согласующий не назначен
}

type Provider interface {
	// RouteInitial вычисляет начальное состояние и согласующего для новой заявки.
	RouteInitial(requester dbmodels.User, entityType models.EntityType, payload dbmodels.PayloadDiff) (Route, error)
	// RouteApprove вычисляет следующий шаг при согласовании текущего этапа.
	RouteApprove(item dbmodels.WorkflowItem) (Route, error)
	ResolveReviewer(role models.UserRole, departmentID string) (*dbmodels.User, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

func NewInstance(usersStore usersstore.Provider) Provider {
	return impl{
		usersStore: usersStore,
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) RouteInitial(requester dbmodels.User, entityType models.EntityType, payload dbmodels.PayloadDiff) (Route, error) {
	// межведомственное мероприятие уходит сразу владельцу риска принимающего подразделения
	if crossDept, targetDept := isCrossDepartment(requester, entityType, payload); crossDept {
		assignee, err := i.ResolveReviewer(models.RiskOwnerRole, targetDept)
		if err != nil {
			return Route{}, err
		}
		return Route{State: models.WfStateOwnerReview, Assignee: assignee}, nil
	}

	homeDept := ""
	if requester.DepartmentID != nil {
		homeDept = *requester.DepartmentID
	}

	switch requester.Role {
	case models.AdminRole:
		// изменения администратора применяются сразу
		return Route{State: models.WfStateApproved}, nil
	case models.RiskChampionRole:
		assignee, err := i.ResolveReviewer(models.RiskOwnerRole, homeDept)
		if err != nil {
			return Route{}, err
		}
		return Route{State: models.WfStateOwnerReview, Assignee: assignee}, nil
	case models.RiskOwnerRole:
		assignee, err := i.ResolveReviewer(models.AdminRole, "")
		if err != nil {
			return Route{}, err
		}
		return Route{State: models.WfStateAdminReview, Assignee: assignee}, nil
	default:
		// TeamMember, Executive и прочие роли начинают с риск-координатора
		assignee, err := i.ResolveReviewer(models.RiskChampionRole, homeDept)
		if err != nil {
			return Route{}, err
		}
		return Route{State: models.WfStateSubmitted, Assignee: assignee}, nil
	}
}

func (i impl) RouteApprove(item dbmodels.WorkflowItem) (Route, error) {
	next, ok := item.State.NextOnApprove()
	if !ok {
		return Route{}, apperr.Newf(apperr.KindValidation, "согласование недоступно в состоянии %v", item.State.ToHuman())
	}
	switch next {
	case models.WfStateOwnerReview:
		dept := ""
		if item.DepartmentID != nil {
			dept = *item.DepartmentID
		}
		assignee, err := i.ResolveReviewer(models.RiskOwnerRole, dept)
		if err != nil {
			return Route{}, err
		}
		return Route{State: next, Assignee: assignee}, nil
	case models.WfStateAdminReview:
		assignee, err := i.ResolveReviewer(models.AdminRole, "")
		if err != nil {
			return Route{}, err
		}
		return Route{State: next, Assignee: assignee}, nil
	default:
		return Route{State: next}, nil
	}
}

func (i impl) ResolveReviewer(role models.UserRole, departmentID string) (*dbmodels.User, error) {
	rec, err := i.usersStore.FirstActiveWithRole(role, departmentID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		log.
			WithField("role", role).
			WithField("department_id", departmentID).
			Warn("не найден активный согласующий, заявка останется без назначения")
	}
	return rec, nil
}

// isCrossDepartment: мероприятие с принимающим подразделением, отличным
// от основного подразделения автора.
func isCrossDepartment(requester dbmodels.User, entityType models.EntityType, payload dbmodels.PayloadDiff) (bool, string) {
	if entityType != models.EntityAction {
		return false, ""
	}
	target, ok := payload["assigned_department_id"].(string)
	if !ok || target == "" {
		return false, ""
	}
	if requester.DepartmentID != nil && *requester.DepartmentID == target {
		return false, ""
	}
	return true, target
}
