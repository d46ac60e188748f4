package apperr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestApperr(t *testing.T) {
	t.Run(`классификация`, func(t *testing.T) {
		err := New(KindNotFound, "заявка не найдена")
		require.Equal(t, KindNotFound, KindOf(err))
		require.True(t, IsKind(err, KindNotFound))
		require.False(t, IsKind(err, KindConflict))
	})

	t.Run(`классификация сквозь обёртки`, func(t *testing.T) {
		err := New(KindConflict, "состояние заявки изменилось")
		wrapped := errors.Wrap(err, "ошибка обработки")
		require.Equal(t, KindConflict, KindOf(wrapped))
	})

	t.Run(`неклассифицированная ошибка`, func(t *testing.T) {
		err := errors.New("connection refused")
		require.Equal(t, Kind(0), KindOf(err))
		require.Equal(t, "внутренняя ошибка", UserMessage(err, "внутренняя ошибка"))
	})

	t.Run(`сообщение пользователю без причины`, func(t *testing.T) {
		cause := errors.New("pq: duplicate key")
		err := Wrap(KindDependency, cause, "не удалось сохранить запись")
		require.Equal(t, "не удалось сохранить запись", UserMessage(err, "внутренняя ошибка"))
		require.Contains(t, err.Error(), "pq: duplicate key")
		require.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run(`wrap nil`, func(t *testing.T) {
		require.Nil(t, Wrap(KindDependency, nil, "не удалось сохранить запись"))
	})
}
