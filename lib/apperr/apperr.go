package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Классификация ошибок бизнес-операций.
// Контроллеры сопоставляют вид ошибки с HTTP статусом.
type Kind int

const (
	KindValidation    Kind = iota + 1 // некорректные или ссылочно-невалидные данные
	KindAuthorization                 // недостаточно прав/назначения
	KindNotFound                      // запись не найдена
	KindConflict                      // проигран конкурентный переход, нужно обновить и повторить
	KindDependency                    // ошибка хранилища/внешней зависимости
)

type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Message - сообщение без технических деталей причины, для ответа пользователю.
func (e *Error) Message() string {
	return e.msg
}

func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, msg string) error {
	if cause == nil {
		return nil
	}
	return &Error{kind: kind, msg: msg, cause: cause}
}

// KindOf возвращает вид ошибки, 0 - если ошибка не классифицирована.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// UserMessage - сообщение для пользователя; для неклассифицированных
// ошибок возвращает fallback, чтобы не раскрывать внутренние детали.
func UserMessage(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.msg
	}
	return fallback
}
