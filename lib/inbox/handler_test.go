package inboxhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"erm-backend/lib/apperr"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

type fakeInboxStore struct {
	assigned   []dbmodels.WorkflowItem
	originated []dbmodels.WorkflowItem
	active     []dbmodels.WorkflowItem
}

func (f fakeInboxStore) Create(rec dbmodels.WorkflowItem) (string, error) { return rec.ID, nil }

func (f fakeInboxStore) GetByID(id string) (*dbmodels.WorkflowItem, error) { return nil, nil }

func (f fakeInboxStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeInboxStore) UpdateWithStateCheck(id string, expected models.WorkflowState, updMap map[string]interface{}) (bool, error) {
	return false, nil
}

func (f fakeInboxStore) ListAssigned(userID string) ([]dbmodels.WorkflowItem, error) {
	return f.assigned, nil
}

func (f fakeInboxStore) ListOriginatedActive(userID string) ([]dbmodels.WorkflowItem, error) {
	return f.originated, nil
}

func (f fakeInboxStore) ListActive() ([]dbmodels.WorkflowItem, error) { return f.active, nil }

func (f fakeInboxStore) CountAssigned(userID string) (int64, error) {
	return int64(len(f.assigned)), nil
}

func (f fakeInboxStore) CountOriginatedActive(userID string) (int64, error) {
	return int64(len(f.originated)), nil
}

type fakeInboxHistoryStore struct {
	counts map[string]int64
}

func (f fakeInboxHistoryStore) Create(rec dbmodels.WorkflowHistory) (string, error) {
	return rec.ID, nil
}

func (f fakeInboxHistoryStore) List(itemID string) ([]dbmodels.WorkflowHistory, error) {
	return nil, nil
}

func (f fakeInboxHistoryStore) CommentsCountByItem(itemIDs []string) (map[string]int64, error) {
	return f.counts, nil
}

type fakeInboxUsersStore struct {
	users map[string]*dbmodels.User
}

func (f fakeInboxUsersStore) Create(rec dbmodels.User) (string, error) { return rec.ID, nil }

func (f fakeInboxUsersStore) GetByID(id string) (*dbmodels.User, error) { return f.users[id], nil }

func (f fakeInboxUsersStore) GetByEmail(email string) (*dbmodels.User, error) { return nil, nil }

func (f fakeInboxUsersStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeInboxUsersStore) List() ([]dbmodels.User, error) { return nil, nil }

func (f fakeInboxUsersStore) FirstActiveWithRole(role models.UserRole, departmentID string) (*dbmodels.User, error) {
	return nil, nil
}

func makeItem(id string, state models.WorkflowState) dbmodels.WorkflowItem {
	rec := dbmodels.WorkflowItem{
		EntityType: models.EntityRisk,
		State:      state,
	}
	rec.ID = id
	return rec
}

func TestInbox(t *testing.T) {
	admin := dbmodels.User{Role: models.AdminRole, IsActive: true}
	admin.ID = "admin-1"
	member := dbmodels.User{Role: models.TeamMemberRole, IsActive: true}
	member.ID = "member-1"

	handler := impl{
		store: fakeInboxStore{
			assigned:   []dbmodels.WorkflowItem{makeItem("item-1", models.WfStateSubmitted)},
			originated: []dbmodels.WorkflowItem{makeItem("item-2", models.WfStateOwnerReview)},
			active: []dbmodels.WorkflowItem{
				makeItem("item-1", models.WfStateSubmitted),
				makeItem("item-2", models.WfStateOwnerReview),
			},
		},
		historyStore: fakeInboxHistoryStore{counts: map[string]int64{"item-1": 2}},
		usersStore: fakeInboxUsersStore{users: map[string]*dbmodels.User{
			admin.ID:  &admin,
			member.ID: &member,
		}},
	}

	t.Run(`входящие с числом комментариев`, func(t *testing.T) {
		list, err := handler.Inbox(member.ID)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "item-1", list[0].ID)
		require.Equal(t, int64(2), list[0].CommentsCount)
	})

	t.Run(`поданные пользователем`, func(t *testing.T) {
		list, err := handler.Originated(member.ID)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "item-2", list[0].ID)
	})

	t.Run(`счётчики`, func(t *testing.T) {
		view, err := handler.Counts(member.ID)
		require.Nil(t, err)
		require.Equal(t, int64(1), view.Assigned)
		require.Equal(t, int64(1), view.Originated)
	})

	t.Run(`общая очередь для администратора`, func(t *testing.T) {
		list, err := handler.GlobalQueue(admin.ID)
		require.Nil(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`общая очередь запрещена остальным`, func(t *testing.T) {
		_, err := handler.GlobalQueue(member.ID)
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	})
}
