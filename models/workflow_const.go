package models

// Состояния жизненного цикла заявки на изменение.
type WorkflowState string

const (
	WfStateDraft       WorkflowState = "draft" // синтетическое from-состояние первой записи истории
	WfStateSubmitted   WorkflowState = "submitted"
	WfStateOwnerReview WorkflowState = "owner_review"
	WfStateAdminReview WorkflowState = "admin_review"
	WfStateApproved    WorkflowState = "approved"
	WfStateRejected    WorkflowState = "rejected"
)

var wfStateHumanName = map[WorkflowState]string{
	WfStateDraft:       "Черновик",
	WfStateSubmitted:   "Подана",
	WfStateOwnerReview: "На рассмотрении владельцем риска",
	WfStateAdminReview: "На рассмотрении администратором",
	WfStateApproved:    "Согласована",
	WfStateRejected:    "Отклонена",
}

func (s WorkflowState) ToHuman() string {
	if human, exist := wfStateHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s WorkflowState) IsTerminal() bool {
	return s == WfStateApproved || s == WfStateRejected
}

// NextOnApprove возвращает состояние после согласования текущего этапа.
func (s WorkflowState) NextOnApprove() (next WorkflowState, ok bool) {
	switch s {
	case WfStateSubmitted:
		return WfStateOwnerReview, true
	case WfStateOwnerReview:
		return WfStateAdminReview, true
	case WfStateAdminReview:
		return WfStateApproved, true
	}
	return s, false
}

type WorkflowAction string

const (
	WfActionSubmit   WorkflowAction = "submit"
	WfActionApprove  WorkflowAction = "approve"
	WfActionReject   WorkflowAction = "reject"
	WfActionComment  WorkflowAction = "comment"
	WfActionReassign WorkflowAction = "reassign"
)

var wfActionHumanName = map[WorkflowAction]string{
	WfActionSubmit:   "Подача",
	WfActionApprove:  "Согласование",
	WfActionReject:   "Отклонение",
	WfActionComment:  "Комментарий",
	WfActionReassign: "Переназначение",
}

func (a WorkflowAction) ToHuman() string {
	if human, exist := wfActionHumanName[a]; exist {
		return human
	}
	return string(a)
}

// Типы сущностей, изменяемых через цепочку согласования.
type EntityType string

const (
	EntityRisk          EntityType = "risk"
	EntityAction        EntityType = "action"
	EntityDepartment    EntityType = "department"
	EntityDeptKnowledge EntityType = "dept_knowledge"
	EntityCategory      EntityType = "category"
	EntitySubcategory   EntityType = "subcategory"
	EntityConfig        EntityType = "config"
)

var entityTypeHumanName = map[EntityType]string{
	EntityRisk:          "Риск",
	EntityAction:        "Мероприятие",
	EntityDepartment:    "Подразделение",
	EntityDeptKnowledge: "База знаний подразделения",
	EntityCategory:      "Категория",
	EntitySubcategory:   "Подкатегория",
	EntityConfig:        "Настройка",
}

func (e EntityType) ToHuman() string {
	if human, exist := entityTypeHumanName[e]; exist {
		return human
	}
	return string(e)
}

func (e EntityType) IsValid() bool {
	_, exist := entityTypeHumanName[e]
	return exist
}

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
)
