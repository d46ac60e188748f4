package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkflowState(t *testing.T) {
	t.Run(`цепочка согласования`, func(t *testing.T) {
		next, ok := WfStateSubmitted.NextOnApprove()
		require.True(t, ok)
		require.Equal(t, WfStateOwnerReview, next)

		next, ok = WfStateOwnerReview.NextOnApprove()
		require.True(t, ok)
		require.Equal(t, WfStateAdminReview, next)

		next, ok = WfStateAdminReview.NextOnApprove()
		require.True(t, ok)
		require.Equal(t, WfStateApproved, next)
	})

	t.Run(`из конечных состояний переходов нет`, func(t *testing.T) {
		_, ok := WfStateApproved.NextOnApprove()
		require.False(t, ok)

		_, ok = WfStateRejected.NextOnApprove()
		require.False(t, ok)

		_, ok = WfStateDraft.NextOnApprove()
		require.False(t, ok)
	})

	t.Run(`конечные состояния`, func(t *testing.T) {
		require.True(t, WfStateApproved.IsTerminal())
		require.True(t, WfStateRejected.IsTerminal())
		require.False(t, WfStateSubmitted.IsTerminal())
		require.False(t, WfStateOwnerReview.IsTerminal())
		require.False(t, WfStateAdminReview.IsTerminal())
	})
}

func TestEntityType(t *testing.T) {
	t.Run(`известные типы`, func(t *testing.T) {
		for _, entityType := range []EntityType{EntityRisk, EntityAction, EntityDepartment, EntityDeptKnowledge, EntityCategory, EntitySubcategory, EntityConfig} {
			require.True(t, entityType.IsValid())
		}
	})

	t.Run(`неизвестный тип`, func(t *testing.T) {
		require.False(t, EntityType("unknown").IsValid())
		require.False(t, EntityType("").IsValid())
	})
}
