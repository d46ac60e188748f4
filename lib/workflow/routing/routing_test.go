package routinghandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	usersstore "erm-backend/lib/users/store"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

type fakeUsersStore struct {
	reviewers map[string]*dbmodels.User // role + "/" + departmentID
}

func (f fakeUsersStore) Create(rec dbmodels.User) (string, error) { return rec.ID, nil }

func (f fakeUsersStore) GetByID(id string) (*dbmodels.User, error) { return nil, nil }

func (f fakeUsersStore) GetByEmail(email string) (*dbmodels.User, error) { return nil, nil }

func (f fakeUsersStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeUsersStore) List() ([]dbmodels.User, error) { return nil, nil }

func (f fakeUsersStore) FirstActiveWithRole(role models.UserRole, departmentID string) (*dbmodels.User, error) {
	return f.reviewers[string(role)+"/"+departmentID], nil
}

func makeUser(id string, role models.UserRole, departmentID string) dbmodels.User {
	rec := dbmodels.User{
		FirstName: "Тест",
		LastName:  id,
		IsActive:  true,
		Role:      role,
	}
	rec.ID = id
	if departmentID != "" {
		rec.DepartmentID = &departmentID
	}
	return rec
}

func TestRouteInitial(t *testing.T) {
	champion := makeUser("champion-1", models.RiskChampionRole, "dept-1")
	owner := makeUser("owner-1", models.RiskOwnerRole, "dept-1")
	ownerOther := makeUser("owner-2", models.RiskOwnerRole, "dept-2")
	admin := makeUser("admin-1", models.AdminRole, "")

	routing := NewInstance(fakeUsersStore{reviewers: map[string]*dbmodels.User{
		"RISK_CHAMPION/dept-1": &champion,
		"RISK_OWNER/dept-1":    &owner,
		"RISK_OWNER/dept-2":    &ownerOther,
		"ADMIN/":               &admin,
	}})

	t.Run(`сотрудник подаёт риск-координатору`, func(t *testing.T) {
		requester := makeUser("user-1", models.TeamMemberRole, "dept-1")
		route, err := routing.RouteInitial(requester, models.EntityRisk, dbmodels.PayloadDiff{"title": "Риск"})
		require.Nil(t, err)
		require.Equal(t, models.WfStateSubmitted, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, champion.ID, route.Assignee.ID)
	})

	t.Run(`руководитель подаёт риск-координатору`, func(t *testing.T) {
		requester := makeUser("user-2", models.ExecutiveRole, "dept-1")
		route, err := routing.RouteInitial(requester, models.EntityRisk, dbmodels.PayloadDiff{"title": "Риск"})
		require.Nil(t, err)
		require.Equal(t, models.WfStateSubmitted, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, champion.ID, route.Assignee.ID)
	})

	t.Run(`риск-координатор подаёт владельцу риска`, func(t *testing.T) {
		route, err := routing.RouteInitial(champion, models.EntityRisk, dbmodels.PayloadDiff{"title": "Риск"})
		require.Nil(t, err)
		require.Equal(t, models.WfStateOwnerReview, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, owner.ID, route.Assignee.ID)
	})

	t.Run(`владелец риска подаёт администратору`, func(t *testing.T) {
		route, err := routing.RouteInitial(owner, models.EntityRisk, dbmodels.PayloadDiff{"title": "Риск"})
		require.Nil(t, err)
		require.Equal(t, models.WfStateAdminReview, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, admin.ID, route.Assignee.ID)
	})

	t.Run(`заявка администратора согласована сразу`, func(t *testing.T) {
		route, err := routing.RouteInitial(admin, models.EntityRisk, dbmodels.PayloadDiff{"title": "Риск"})
		require.Nil(t, err)
		require.Equal(t, models.WfStateApproved, route.State)
		require.Nil(t, route.Assignee)
	})

	t.Run(`межведомственное мероприятие уходит владельцу принимающего подразделения`, func(t *testing.T) {
		route, err := routing.RouteInitial(champion, models.EntityAction, dbmodels.PayloadDiff{
			"title":                  "Мероприятие",
			"assigned_department_id": "dept-2",
		})
		require.Nil(t, err)
		require.Equal(t, models.WfStateOwnerReview, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, ownerOther.ID, route.Assignee.ID)
	})

	t.Run(`мероприятие в своём подразделении идёт обычным маршрутом`, func(t *testing.T) {
		requester := makeUser("user-3", models.TeamMemberRole, "dept-1")
		route, err := routing.RouteInitial(requester, models.EntityAction, dbmodels.PayloadDiff{
			"title":                  "Мероприятие",
			"assigned_department_id": "dept-1",
		})
		require.Nil(t, err)
		require.Equal(t, models.WfStateSubmitted, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, champion.ID, route.Assignee.ID)
	})

	t.Run(`без подходящего согласующего заявка остаётся без назначения`, func(t *testing.T) {
		requester := makeUser("user-4", models.TeamMemberRole, "dept-3")
		route, err := routing.RouteInitial(requester, models.EntityRisk, dbmodels.PayloadDiff{"title": "Риск"})
		require.Nil(t, err)
		require.Equal(t, models.WfStateSubmitted, route.State)
		require.Nil(t, route.Assignee)
	})
}

func TestRouteApprove(t *testing.T) {
	owner := makeUser("owner-1", models.RiskOwnerRole, "dept-1")
	admin := makeUser("admin-1", models.AdminRole, "")

	routing := NewInstance(fakeUsersStore{reviewers: map[string]*dbmodels.User{
		"RISK_OWNER/dept-1": &owner,
		"ADMIN/":            &admin,
	}})

	departmentID := "dept-1"
	item := dbmodels.WorkflowItem{
		EntityType:   models.EntityRisk,
		DepartmentID: &departmentID,
		State:        models.WfStateSubmitted,
	}

	t.Run(`submitted - владельцу риска`, func(t *testing.T) {
		route, err := routing.RouteApprove(item)
		require.Nil(t, err)
		require.Equal(t, models.WfStateOwnerReview, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, owner.ID, route.Assignee.ID)
	})

	t.Run(`owner_review - администратору`, func(t *testing.T) {
		item.State = models.WfStateOwnerReview
		route, err := routing.RouteApprove(item)
		require.Nil(t, err)
		require.Equal(t, models.WfStateAdminReview, route.State)
		require.NotNil(t, route.Assignee)
		require.Equal(t, admin.ID, route.Assignee.ID)
	})

	t.Run(`admin_review - согласовано`, func(t *testing.T) {
		item.State = models.WfStateAdminReview
		route, err := routing.RouteApprove(item)
		require.Nil(t, err)
		require.Equal(t, models.WfStateApproved, route.State)
		require.Nil(t, route.Assignee)
	})

	t.Run(`из конечного состояния согласование недоступно`, func(t *testing.T) {
		item.State = models.WfStateApproved
		_, err := routing.RouteApprove(item)
		require.NotNil(t, err)
	})
}

var _ usersstore.Provider = fakeUsersStore{}
