package models

// Коды событий для пушей и уведомлений.
type PushCode string

const (
	PushCodeWfAssigned  PushCode = "WF_ASSIGNED"  // заявка назначена на пользователя
	PushCodeWfResolved  PushCode = "WF_RESOLVED"  // заявка пользователя согласована/отклонена
	PushCodeWfCommented PushCode = "WF_COMMENTED" // к заявке добавлен комментарий
)
