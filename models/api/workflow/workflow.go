package workflowapimodels

import (
	"time"

	"github.com/pkg/errors"

	"erm-backend/models"
	dbmodels "erm-backend/models/db"
)

type WorkflowItemCreateData struct {
	EntityType   models.EntityType   `json:"entity_type"`
	EntityID     string              `json:"entity_id,omitempty"`      // пусто - создание новой сущности
	DepartmentID string              `json:"department_id,omitempty"`  // контекст маршрутизации, по умолчанию подразделение автора
	PayloadDiff  dbmodels.PayloadDiff `json:"payload_diff"`
	Comment      string              `json:"comment,omitempty"`
}

func (d WorkflowItemCreateData) Validate() error {
	if d.EntityType == "" {
		return errors.New("не указан тип сущности")
	}
	if !d.EntityType.IsValid() {
		return errors.Errorf("неизвестный тип сущности: %v", d.EntityType)
	}
	if len(d.PayloadDiff) == 0 {
		return errors.New("не указаны изменяемые данные")
	}
	return nil
}

type TransitionData struct {
	Comment string `json:"comment,omitempty"`
}

type ReassignData struct {
	AssigneeUserID string `json:"assignee_user_id"`
}

func (d ReassignData) Validate() error {
	if d.AssigneeUserID == "" {
		return errors.New("не указан идентификатор пользователя")
	}
	return nil
}

type WorkflowItemCreatedView struct {
	ID    string               `json:"id"`
	State models.WorkflowState `json:"state"`
}

type TransitionView struct {
	State models.WorkflowState `json:"state"`
}

type WorkflowItemView struct {
	ID             string               `json:"id"`
	EntityType     models.EntityType    `json:"entity_type"`
	EntityTypeName string               `json:"entity_type_name"`
	EntityID       string               `json:"entity_id,omitempty"`
	DepartmentID   string               `json:"department_id,omitempty"`
	DepartmentName string               `json:"department_name,omitempty"`
	PayloadDiff    dbmodels.PayloadDiff `json:"payload_diff"`
	State          models.WorkflowState `json:"state"`
	StateName      string               `json:"state_name"`
	RequestedBy    string               `json:"requested_by"`
	RequesterName  string               `json:"requester_name,omitempty"`
	AssignedTo     string               `json:"assigned_to,omitempty"`
	AssigneeName   string               `json:"assignee_name,omitempty"`
	Comment        string               `json:"comment,omitempty"`
	CommentsCount  int64                `json:"comments_count"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func WorkflowItemConvert(rec dbmodels.WorkflowItem) WorkflowItemView {
	view := WorkflowItemView{
		ID:             rec.ID,
		EntityType:     rec.EntityType,
		EntityTypeName: rec.EntityType.ToHuman(),
		PayloadDiff:    rec.PayloadDiff,
		State:          rec.State,
		StateName:      rec.State.ToHuman(),
		RequestedBy:    rec.RequestedBy,
		Comment:        rec.Comment,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.EntityID != nil {
		view.EntityID = *rec.EntityID
	}
	if rec.DepartmentID != nil {
		view.DepartmentID = *rec.DepartmentID
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	if rec.Requester != nil {
		view.RequesterName = rec.Requester.GetFullName()
	}
	if rec.AssignedTo != nil {
		view.AssignedTo = *rec.AssignedTo
	}
	if rec.Assignee != nil {
		view.AssigneeName = rec.Assignee.GetFullName()
	}
	return view
}

type WorkflowHistoryView struct {
	ID         string                `json:"id"`
	ItemID     string                `json:"item_id"`
	ActorID    string                `json:"actor_id"`
	ActorName  string                `json:"actor_name,omitempty"`
	Action     models.WorkflowAction `json:"action"`
	ActionName string                `json:"action_name"`
	Comment    string                `json:"comment,omitempty"`
	FromState  models.WorkflowState  `json:"from_state"`
	ToState    models.WorkflowState  `json:"to_state"`
	CreatedAt  time.Time             `json:"created_at"`
}

func WorkflowHistoryConvert(rec dbmodels.WorkflowHistory) WorkflowHistoryView {
	view := WorkflowHistoryView{
		ID:         rec.ID,
		ItemID:     rec.ItemID,
		ActorID:    rec.ActorUserID,
		Action:     rec.Action,
		ActionName: rec.Action.ToHuman(),
		Comment:    rec.Comment,
		FromState:  rec.FromState,
		ToState:    rec.ToState,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Actor != nil {
		view.ActorName = rec.Actor.GetFullName()
	}
	return view
}

type CountsView struct {
	Assigned   int64 `json:"assigned"`   // назначено на пользователя
	Originated int64 `json:"originated"` // подано пользователем, не в терминальном состоянии
}
