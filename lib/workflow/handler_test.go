package workflowhandler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"erm-backend/lib/apperr"
	audithandler "erm-backend/lib/audit"
	departmentstore "erm-backend/lib/dicts/department/store"
	notifyhandler "erm-backend/lib/notify"
	usersstore "erm-backend/lib/users/store"
	applyhandler "erm-backend/lib/workflow/apply"
	workflowhistorystore "erm-backend/lib/workflow/history-store"
	routinghandler "erm-backend/lib/workflow/routing"
	workflowstore "erm-backend/lib/workflow/store"
	"erm-backend/models"
	auditapimodels "erm-backend/models/api/audit"
	workflowapimodels "erm-backend/models/api/workflow"
	dbmodels "erm-backend/models/db"
)

type fakeWorkflowStore struct {
	items         map[string]*dbmodels.WorkflowItem
	nextID        int
	forceConflict bool
}

func newFakeWorkflowStore() *fakeWorkflowStore {
	return &fakeWorkflowStore{items: map[string]*dbmodels.WorkflowItem{}}
}

func (f *fakeWorkflowStore) Create(rec dbmodels.WorkflowItem) (string, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("item-%d", f.nextID)
	f.items[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeWorkflowStore) GetByID(id string) (*dbmodels.WorkflowItem, error) {
	rec, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeWorkflowStore) Update(id string, updMap map[string]interface{}) error {
	f.applyUpdMap(id, updMap)
	return nil
}

func (f *fakeWorkflowStore) UpdateWithStateCheck(id string, expected models.WorkflowState, updMap map[string]interface{}) (bool, error) {
	if f.forceConflict {
		return false, nil
	}
	rec, ok := f.items[id]
	if !ok || rec.State != expected {
		return false, nil
	}
	f.applyUpdMap(id, updMap)
	return true, nil
}

func (f *fakeWorkflowStore) applyUpdMap(id string, updMap map[string]interface{}) {
	rec := f.items[id]
	if v, ok := updMap["state"]; ok {
		rec.State = v.(models.WorkflowState)
	}
	if v, ok := updMap["assigned_to"]; ok {
		if v == nil {
			rec.AssignedTo = nil
		} else {
			assignee := v.(string)
			rec.AssignedTo = &assignee
		}
	}
	if v, ok := updMap["comment"]; ok {
		rec.Comment = v.(string)
	}
}

func (f *fakeWorkflowStore) ListAssigned(userID string) ([]dbmodels.WorkflowItem, error) {
	return nil, nil
}

func (f *fakeWorkflowStore) ListOriginatedActive(userID string) ([]dbmodels.WorkflowItem, error) {
	return nil, nil
}

func (f *fakeWorkflowStore) ListActive() ([]dbmodels.WorkflowItem, error) { return nil, nil }

func (f *fakeWorkflowStore) CountAssigned(userID string) (int64, error) { return 0, nil }

func (f *fakeWorkflowStore) CountOriginatedActive(userID string) (int64, error) { return 0, nil }

type fakeHistoryStore struct {
	recs []dbmodels.WorkflowHistory
}

func (f *fakeHistoryStore) Create(rec dbmodels.WorkflowHistory) (string, error) {
	f.recs = append(f.recs, rec)
	return rec.ID, nil
}

func (f *fakeHistoryStore) List(itemID string) ([]dbmodels.WorkflowHistory, error) {
	list := []dbmodels.WorkflowHistory{}
	for _, rec := range f.recs {
		if rec.ItemID == itemID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeHistoryStore) CommentsCountByItem(itemIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, rec := range f.recs {
		if rec.Comment == "" {
			continue
		}
		for _, id := range itemIDs {
			if rec.ItemID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

type fakeEngineUsersStore struct {
	users map[string]*dbmodels.User
}

func (f fakeEngineUsersStore) Create(rec dbmodels.User) (string, error) { return rec.ID, nil }

func (f fakeEngineUsersStore) GetByID(id string) (*dbmodels.User, error) { return f.users[id], nil }

func (f fakeEngineUsersStore) GetByEmail(email string) (*dbmodels.User, error) { return nil, nil }

func (f fakeEngineUsersStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeEngineUsersStore) List() ([]dbmodels.User, error) { return nil, nil }

func (f fakeEngineUsersStore) FirstActiveWithRole(role models.UserRole, departmentID string) (*dbmodels.User, error) {
	for _, rec := range f.users {
		if rec.Role != role || !rec.IsActive {
			continue
		}
		if departmentID == "" {
			return rec, nil
		}
		if rec.DepartmentID != nil && *rec.DepartmentID == departmentID {
			return rec, nil
		}
	}
	return nil, nil
}

type fakeDeptStore struct{}

func (f fakeDeptStore) Create(rec dbmodels.Department) (string, error) { return rec.ID, nil }

func (f fakeDeptStore) GetByID(id string) (*dbmodels.Department, error) {
	rec := dbmodels.Department{Name: "Подразделение"}
	rec.ID = id
	return &rec, nil
}

func (f fakeDeptStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeDeptStore) List() ([]dbmodels.Department, error) { return nil, nil }

type fakeApply struct {
	applied []dbmodels.WorkflowItem
}

func (f *fakeApply) Validate(entityType models.EntityType, entityID *string, diff dbmodels.PayloadDiff) error {
	return nil
}

func (f *fakeApply) Apply(item dbmodels.WorkflowItem) (applyhandler.Result, error) {
	f.applied = append(f.applied, item)
	return applyhandler.Result{EntityID: "entity-1", Action: models.AuditActionCreate}, nil
}

type fakeAudit struct {
	recorded []applyhandler.Result
}

func (f *fakeAudit) Record(requestedBy string, entityType models.EntityType, result applyhandler.Result) error {
	f.recorded = append(f.recorded, result)
	return nil
}

func (f *fakeAudit) List(entityType models.EntityType, entityID string) ([]auditapimodels.AuditView, error) {
	return nil, nil
}

type fakeNotifier struct {
	assigned  []string
	resolved  int
	commented int
}

func (f *fakeNotifier) ItemAssigned(item dbmodels.WorkflowItem, assigneeID string) {
	f.assigned = append(f.assigned, assigneeID)
}

func (f *fakeNotifier) ItemResolved(item dbmodels.WorkflowItem) { f.resolved++ }

func (f *fakeNotifier) ItemCommented(item dbmodels.WorkflowItem, actorName, comment string) {
	f.commented++
}

type engineEnv struct {
	engine   *impl
	store    *fakeWorkflowStore
	history  *fakeHistoryStore
	apply    *fakeApply
	audit    *fakeAudit
	notifier *fakeNotifier
}

func newEngineEnv(users ...dbmodels.User) engineEnv {
	usersByID := map[string]*dbmodels.User{}
	for idx := range users {
		usersByID[users[idx].ID] = &users[idx]
	}
	usersStore := fakeEngineUsersStore{users: usersByID}
	store := newFakeWorkflowStore()
	history := &fakeHistoryStore{}
	apply := &fakeApply{}
	audit := &fakeAudit{}
	notifier := &fakeNotifier{}
	engine := &impl{
		store:        store,
		historyStore: history,
		usersStore:   usersStore,
		deptStore:    fakeDeptStore{},
		routing:      routinghandler.NewInstance(usersStore),
		validator:    apply,
		notifier:     notifier,
		runInTx: func(fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		storeWithTx:   func(tx *gorm.DB) workflowstore.Provider { return store },
		historyWithTx: func(tx *gorm.DB) workflowhistorystore.Provider { return history },
		applyWithTx:   func(tx *gorm.DB) applyhandler.Provider { return apply },
		auditWithTx:   func(tx *gorm.DB) audithandler.Provider { return audit },
	}
	return engineEnv{engine: engine, store: store, history: history, apply: apply, audit: audit, notifier: notifier}
}

func testUser(id string, role models.UserRole, departmentID string) dbmodels.User {
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

func TestCreate(t *testing.T) {
	member := testUser("member-1", models.TeamMemberRole, "dept-1")
	champion := testUser("champion-1", models.RiskChampionRole, "dept-1")
	admin := testUser("admin-1", models.AdminRole, "")

	t.Run(`подача сотрудником`, func(t *testing.T) {
		env := newEngineEnv(member, champion, admin)
		view, err := env.engine.Create(member.ID, workflowapimodels.WorkflowItemCreateData{
			EntityType:  models.EntityRisk,
			PayloadDiff: dbmodels.PayloadDiff{"title": "Новый риск"},
		})
		require.Nil(t, err)
		require.Equal(t, models.WfStateSubmitted, view.State)

		item, err := env.store.GetByID(view.ID)
		require.Nil(t, err)
		require.NotNil(t, item)
		require.NotNil(t, item.AssignedTo)
		require.Equal(t, champion.ID, *item.AssignedTo)
		require.NotNil(t, item.DepartmentID)
		require.Equal(t, "dept-1", *item.DepartmentID)

		require.Len(t, env.history.recs, 1)
		require.Equal(t, models.WfActionSubmit, env.history.recs[0].Action)
		require.Equal(t, models.WfStateDraft, env.history.recs[0].FromState)
		require.Equal(t, models.WfStateSubmitted, env.history.recs[0].ToState)

		require.Empty(t, env.apply.applied)
		require.Equal(t, []string{champion.ID}, env.notifier.assigned)
	})

	t.Run(`подача администратором применяется сразу`, func(t *testing.T) {
		env := newEngineEnv(member, champion, admin)
		view, err := env.engine.Create(admin.ID, workflowapimodels.WorkflowItemCreateData{
			EntityType:  models.EntityCategory,
			PayloadDiff: dbmodels.PayloadDiff{"name": "Операционные"},
		})
		require.Nil(t, err)
		require.Equal(t, models.WfStateApproved, view.State)
		require.Len(t, env.apply.applied, 1)
		require.Len(t, env.audit.recorded, 1)
		require.Len(t, env.history.recs, 1)
		require.Empty(t, env.notifier.assigned)
	})

	t.Run(`пустая полезная нагрузка отклоняется`, func(t *testing.T) {
		env := newEngineEnv(member, champion, admin)
		_, err := env.engine.Create(member.ID, workflowapimodels.WorkflowItemCreateData{
			EntityType: models.EntityRisk,
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`заблокированный пользователь`, func(t *testing.T) {
		blocked := testUser("blocked-1", models.TeamMemberRole, "dept-1")
		blocked.IsActive = false
		env := newEngineEnv(blocked)
		_, err := env.engine.Create(blocked.ID, workflowapimodels.WorkflowItemCreateData{
			EntityType:  models.EntityRisk,
			PayloadDiff: dbmodels.PayloadDiff{"title": "Риск"},
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	})
}

func TestTransition(t *testing.T) {
	member := testUser("member-1", models.TeamMemberRole, "dept-1")
	champion := testUser("champion-1", models.RiskChampionRole, "dept-1")
	owner := testUser("owner-1", models.RiskOwnerRole, "dept-1")
	admin := testUser("admin-1", models.AdminRole, "")

	submit := func(t *testing.T, env engineEnv) string {
		view, err := env.engine.Create(member.ID, workflowapimodels.WorkflowItemCreateData{
			EntityType:  models.EntityRisk,
			PayloadDiff: dbmodels.PayloadDiff{"title": "Новый риск"},
		})
		require.Nil(t, err)
		require.Equal(t, models.WfStateSubmitted, view.State)
		return view.ID
	}

	t.Run(`полный цикл согласования`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)

		view, err := env.engine.Transition(champion.ID, itemID, models.WfActionApprove, "")
		require.Nil(t, err)
		require.Equal(t, models.WfStateOwnerReview, view.State)

		view, err = env.engine.Transition(owner.ID, itemID, models.WfActionApprove, "")
		require.Nil(t, err)
		require.Equal(t, models.WfStateAdminReview, view.State)

		view, err = env.engine.Transition(admin.ID, itemID, models.WfActionApprove, "Согласовано")
		require.Nil(t, err)
		require.Equal(t, models.WfStateApproved, view.State)

		item, err := env.store.GetByID(itemID)
		require.Nil(t, err)
		require.Equal(t, models.WfStateApproved, item.State)
		require.Nil(t, item.AssignedTo)

		// submit + 3 approve
		require.Len(t, env.history.recs, 4)
		require.Len(t, env.apply.applied, 1)
		require.Len(t, env.audit.recorded, 1)
		require.Equal(t, 1, env.notifier.resolved)
	})

	t.Run(`отклонение без комментария запрещено`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		_, err := env.engine.Transition(champion.ID, itemID, models.WfActionReject, "  ")
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`отклонение с комментарием`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		view, err := env.engine.Transition(champion.ID, itemID, models.WfActionReject, "Недостаточно данных")
		require.Nil(t, err)
		require.Equal(t, models.WfStateRejected, view.State)

		item, err := env.store.GetByID(itemID)
		require.Nil(t, err)
		require.Equal(t, models.WfStateRejected, item.State)
		require.Nil(t, item.AssignedTo)
		require.Empty(t, env.apply.applied)
		require.Equal(t, 1, env.notifier.resolved)
	})

	t.Run(`действие не назначенного согласующего запрещено`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		_, err := env.engine.Transition(owner.ID, itemID, models.WfActionApprove, "")
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	})

	t.Run(`администратор может действовать вместо согласующего`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		view, err := env.engine.Transition(admin.ID, itemID, models.WfActionApprove, "")
		require.Nil(t, err)
		require.Equal(t, models.WfStateOwnerReview, view.State)
	})

	t.Run(`проигранная конкурентная гонка - конфликт`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		env.store.forceConflict = true
		_, err := env.engine.Transition(champion.ID, itemID, models.WfActionApprove, "")
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run(`согласование в конечном состоянии запрещено`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		_, err := env.engine.Transition(champion.ID, itemID, models.WfActionReject, "Отклонено")
		require.Nil(t, err)
		_, err = env.engine.Transition(admin.ID, itemID, models.WfActionApprove, "")
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`комментарий не меняет состояние и доступен после закрытия`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		_, err := env.engine.Transition(champion.ID, itemID, models.WfActionReject, "Отклонено")
		require.Nil(t, err)

		view, err := env.engine.Transition(admin.ID, itemID, models.WfActionComment, "Вернитесь с уточнением")
		require.Nil(t, err)
		require.Equal(t, models.WfStateRejected, view.State)

		last := env.history.recs[len(env.history.recs)-1]
		require.Equal(t, models.WfActionComment, last.Action)
		require.Equal(t, last.FromState, last.ToState)
		require.Equal(t, 1, env.notifier.commented)
	})

	t.Run(`пустой комментарий запрещён`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		_, err := env.engine.Transition(champion.ID, itemID, models.WfActionComment, "")
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`недопустимое действие`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		itemID := submit(t, env)
		_, err := env.engine.Transition(champion.ID, itemID, models.WfActionSubmit, "")
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run(`заявка не найдена`, func(t *testing.T) {
		env := newEngineEnv(member, champion, owner, admin)
		_, err := env.engine.Transition(champion.ID, "missing", models.WfActionApprove, "")
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestReassign(t *testing.T) {
	member := testUser("member-1", models.TeamMemberRole, "dept-1")
	champion := testUser("champion-1", models.RiskChampionRole, "dept-1")
	backup := testUser("champion-2", models.RiskChampionRole, "dept-1")
	admin := testUser("admin-1", models.AdminRole, "")

	submit := func(t *testing.T, env engineEnv) string {
		view, err := env.engine.Create(member.ID, workflowapimodels.WorkflowItemCreateData{
			EntityType:  models.EntityRisk,
			PayloadDiff: dbmodels.PayloadDiff{"title": "Новый риск"},
		})
		require.Nil(t, err)
		return view.ID
	}

	t.Run(`переназначение администратором`, func(t *testing.T) {
		env := newEngineEnv(member, champion, backup, admin)
		itemID := submit(t, env)
		err := env.engine.Reassign(admin.ID, itemID, backup.ID)
		require.Nil(t, err)

		item, err := env.store.GetByID(itemID)
		require.Nil(t, err)
		require.NotNil(t, item.AssignedTo)
		require.Equal(t, backup.ID, *item.AssignedTo)

		last := env.history.recs[len(env.history.recs)-1]
		require.Equal(t, models.WfActionReassign, last.Action)
		require.Equal(t, last.FromState, last.ToState)
	})

	t.Run(`переназначение доступно только администратору`, func(t *testing.T) {
		env := newEngineEnv(member, champion, backup, admin)
		itemID := submit(t, env)
		err := env.engine.Reassign(champion.ID, itemID, backup.ID)
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	})

	t.Run(`переназначение на заблокированного пользователя`, func(t *testing.T) {
		blocked := testUser("blocked-1", models.RiskChampionRole, "dept-1")
		blocked.IsActive = false
		env := newEngineEnv(member, champion, blocked, admin)
		itemID := submit(t, env)
		err := env.engine.Reassign(admin.ID, itemID, blocked.ID)
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestReadAccess(t *testing.T) {
	member := testUser("member-1", models.TeamMemberRole, "dept-1")
	champion := testUser("champion-1", models.RiskChampionRole, "dept-1")
	outsider := testUser("outsider-1", models.TeamMemberRole, "dept-2")
	admin := testUser("admin-1", models.AdminRole, "")

	env := newEngineEnv(member, champion, outsider, admin)
	view, err := env.engine.Create(member.ID, workflowapimodels.WorkflowItemCreateData{
		EntityType:  models.EntityRisk,
		PayloadDiff: dbmodels.PayloadDiff{"title": "Новый риск"},
	})
	require.Nil(t, err)

	t.Run(`автор, согласующий и администратор видят заявку`, func(t *testing.T) {
		for _, userID := range []string{member.ID, champion.ID, admin.ID} {
			_, err := env.engine.GetByID(userID, view.ID)
			require.Nil(t, err)
		}
	})

	t.Run(`посторонний доступа не имеет`, func(t *testing.T) {
		_, err := env.engine.GetByID(outsider.ID, view.ID)
		require.NotNil(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	})

	t.Run(`история с числом комментариев`, func(t *testing.T) {
		_, err := env.engine.Transition(champion.ID, view.ID, models.WfActionComment, "Уточните описание")
		require.Nil(t, err)
		itemView, err := env.engine.GetByID(member.ID, view.ID)
		require.Nil(t, err)
		require.Equal(t, int64(1), itemView.CommentsCount)

		history, err := env.engine.History(member.ID, view.ID)
		require.Nil(t, err)
		require.Len(t, history, 2)
	})
}

var (
	_ workflowstore.Provider        = &fakeWorkflowStore{}
	_ workflowhistorystore.Provider = &fakeHistoryStore{}
	_ usersstore.Provider           = fakeEngineUsersStore{}
	_ departmentstore.Provider      = fakeDeptStore{}
	_ applyhandler.Provider         = &fakeApply{}
	_ audithandler.Provider         = &fakeAudit{}
	_ notifyhandler.Provider        = &fakeNotifier{}
)
