package notifyhandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"erm-backend/config"
	"erm-backend/db"
	pushdatastore "erm-backend/lib/notify/push-store"
	settingsstore "erm-backend/lib/settings/store"
	"erm-backend/lib/smtp"
	usersstore "erm-backend/lib/users/store"
	connectionhub "erm-backend/lib/ws/hub/connection-hub"
	"erm-backend/models"
	dbmodels "erm-backend/models/db"
	wsmodels "erm-backend/models/ws"
)

// Уведомления отправляются по принципу "максимум усилий":
// сбой доставки логируется и не влияет на результат согласования.
type Provider interface {
	ItemAssigned(item dbmodels.WorkflowItem, assigneeID string)
	ItemResolved(item dbmodels.WorkflowItem)
	ItemCommented(item dbmodels.WorkflowItem, actorName, comment string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore:    usersstore.NewInstance(db.DB),
		settingsStore: settingsstore.NewInstance(db.DB),
		pushStore:     pushdatastore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore    usersstore.Provider
	settingsStore settingsstore.Provider
	pushStore     pushdatastore.Provider
}

func (i impl) getLogger(itemID, userID string) *log.Entry {
	return log.
		WithField("item_id", itemID).
		WithField("user_id", userID)
}

func (i impl) ItemAssigned(item dbmodels.WorkflowItem, assigneeID string) {
	msg := fmt.Sprintf("Вам назначена заявка на согласование: %v", item.EntityType.ToHuman())
	i.send(item, assigneeID, models.PushCodeWfAssigned, "Новая заявка", msg)
}

func (i impl) ItemResolved(item dbmodels.WorkflowItem) {
	msg := fmt.Sprintf("Ваша заявка (%v) переведена в статус: %v", item.EntityType.ToHuman(), item.State.ToHuman())
	i.send(item, item.RequestedBy, models.PushCodeWfResolved, "Заявка рассмотрена", msg)
}

func (i impl) ItemCommented(item dbmodels.WorkflowItem, actorName, comment string) {
	msg := fmt.Sprintf("%s оставил комментарий к заявке (%v): %s", actorName, item.EntityType.ToHuman(), comment)
	i.send(item, item.RequestedBy, models.PushCodeWfCommented, "Новый комментарий", msg)
}

func (i impl) send(item dbmodels.WorkflowItem, userID string, code models.PushCode, title, msg string) {
	logger := i.getLogger(item.ID, userID)
	if userID == "" {
		return
	}
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя для уведомления")
		return
	}
	if user == nil {
		logger.Error("получатель уведомления не найден")
		return
	}

	i.sendPush(userID, code, title, msg, logger)
	i.sendEmail(user.Email, title, msg, logger)
}

func (i impl) sendPush(userID string, code models.PushCode, title, msg string, logger *log.Entry) {
	if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(userID) {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     time.Now().Format("02.01.2006 15:04:05"),
			Code:     string(code),
			Msg:      msg,
		})
		return
	}
	err := i.pushStore.Create(dbmodels.PushData{
		UserID: userID,
		Code:   code,
		Msg:    msg,
		Title:  title,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения отложенного пуш-события")
	}
}

func (i impl) sendEmail(email, subject, msg string, logger *log.Entry) {
	if email == "" {
		return
	}
	enabled, err := i.settingsStore.GetByKey("notify.email.enabled")
	if err != nil {
		logger.WithError(err).Error("ошибка получения настройки почтовых уведомлений")
		return
	}
	if enabled != nil && enabled.Value != "true" {
		return
	}
	if smtp.Instance == nil {
		return
	}
	if err := smtp.Instance.SendEMail(config.Conf.Smtp.From, email, msg, subject); err != nil {
		logger.WithError(err).Error("ошибка отправки почтового уведомления")
	}
}
