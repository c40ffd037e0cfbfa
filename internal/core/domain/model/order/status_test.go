package order_test

import (
	"errors"
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate every enumerated status", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			t.Run(fmt.Sprintf("should validate %s", status.String()), func(t *testing.T) {
				err := status.Validate()
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject unknown status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			"",
			"pending",
			"ASSIGNED",
			"DONE",
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject %q", string(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "value is invalid: status")
				assert.Contains(t, err.Error(), fmt.Sprintf("%q is not a valid status", string(status)))
			})
		}
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should allow every transition in the table", func(t *testing.T) {
		allowedTransitions := []struct {
			from order.Status
			to   order.Status
		}{
			{order.StatusPending, order.StatusDriverAssigned},
			{order.StatusPending, order.StatusNoDriverAvailable},
			{order.StatusPending, order.StatusCancelledBySystem},
			{order.StatusDriverAssigned, order.StatusDriverAccepted},
			{order.StatusDriverAssigned, order.StatusCancelledByDriver},
			{order.StatusDriverAssigned, order.StatusExpired},
			{order.StatusDriverAccepted, order.StatusDriverArriving},
			{order.StatusDriverAccepted, order.StatusCancelledByDriver},
			{order.StatusDriverAccepted, order.StatusCancelledByCustomer},
			{order.StatusDriverArriving, order.StatusInProgress},
			{order.StatusDriverArriving, order.StatusCancelledByDriver},
			{order.StatusDriverArriving, order.StatusCancelledByCustomer},
			{order.StatusInProgress, order.StatusCompleted},
			{order.StatusInProgress, order.StatusCancelledByDriver},
			{order.StatusNoDriverAvailable, order.StatusDriverAssigned},
			{order.StatusNoDriverAvailable, order.StatusCancelledBySystem},
		}

		for _, tc := range allowedTransitions {
			t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
				next, err := tc.from.TransitionTo(tc.to)

				require.NoError(t, err)
				assert.Equal(t, tc.to, next)
			})
		}
	})

	t.Run("should reject transitions missing from the table", func(t *testing.T) {
		disallowedTransitions := []struct {
			from order.Status
			to   order.Status
		}{
			{order.StatusPending, order.StatusCompleted},
			{order.StatusPending, order.StatusDriverAccepted},
			{order.StatusPending, order.StatusCancelledByCustomer},
			{order.StatusDriverAssigned, order.StatusInProgress},
			{order.StatusDriverAssigned, order.StatusCancelledByCustomer},
			{order.StatusInProgress, order.StatusCancelledByCustomer},
			{order.StatusInProgress, order.StatusPending},
			{order.StatusNoDriverAvailable, order.StatusPending},
		}

		for _, tc := range disallowedTransitions {
			t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
				next, err := tc.from.TransitionTo(tc.to)

				require.Error(t, err)
				assert.Empty(t, next)
				require.ErrorIs(t, err, order.ErrInvalidTransition)

				var transitionErr *order.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tc.from, transitionErr.From)
				assert.Equal(t, tc.to, transitionErr.To)
			})
		}
	})

	t.Run("should reject any transition out of a terminal status", func(t *testing.T) {
		terminal := []order.Status{
			order.StatusCompleted,
			order.StatusCancelledByCustomer,
			order.StatusCancelledByDriver,
			order.StatusCancelledBySystem,
			order.StatusExpired,
		}

		for _, from := range terminal {
			for _, to := range order.AllStatuses() {
				t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
					_, err := from.TransitionTo(to)

					require.ErrorIs(t, err, order.ErrInvalidTransition)
				})
			}
		}
	})

	t.Run("should reject a transition to an unknown status", func(t *testing.T) {
		_, err := order.StatusPending.TransitionTo(order.Status("TELEPORTED"))

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.NotErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestStatus_AllowedNext(t *testing.T) {
	t.Run("should list the successors of a non-terminal status", func(t *testing.T) {
		next := order.StatusPending.AllowedNext()

		assert.ElementsMatch(t, []order.Status{
			order.StatusDriverAssigned,
			order.StatusNoDriverAvailable,
			order.StatusCancelledBySystem,
		}, next)
	})

	t.Run("should return an empty set for terminal and unknown statuses", func(t *testing.T) {
		assert.Empty(t, order.StatusCompleted.AllowedNext())
		assert.Empty(t, order.StatusExpired.AllowedNext())
		assert.Empty(t, order.Status("BOGUS").AllowedNext())
	})

	t.Run("should return a copy that does not alias the table", func(t *testing.T) {
		next := order.StatusPending.AllowedNext()
		require.NotEmpty(t, next)
		next[0] = order.Status("MUTATED")

		again := order.StatusPending.AllowedNext()
		assert.NotContains(t, again, order.Status("MUTATED"))
	})
}

func TestStatus_Predicates(t *testing.T) {
	t.Run("should classify terminal statuses", func(t *testing.T) {
		assert.True(t, order.StatusCompleted.IsTerminal())
		assert.True(t, order.StatusCancelledByCustomer.IsTerminal())
		assert.True(t, order.StatusCancelledByDriver.IsTerminal())
		assert.True(t, order.StatusCancelledBySystem.IsTerminal())
		assert.True(t, order.StatusExpired.IsTerminal())

		assert.False(t, order.StatusPending.IsTerminal())
		assert.False(t, order.StatusInProgress.IsTerminal())
		assert.False(t, order.Status("BOGUS").IsTerminal())
	})

	t.Run("should classify cancelled statuses", func(t *testing.T) {
		assert.True(t, order.StatusCancelledByCustomer.IsCancelled())
		assert.True(t, order.StatusCancelledByDriver.IsCancelled())
		assert.True(t, order.StatusCancelledBySystem.IsCancelled())

		assert.False(t, order.StatusExpired.IsCancelled())
		assert.False(t, order.StatusCompleted.IsCancelled())
	})

	t.Run("should classify dispatchable statuses", func(t *testing.T) {
		assert.True(t, order.StatusPending.IsDispatchable())
		assert.True(t, order.StatusNoDriverAvailable.IsDispatchable())

		assert.False(t, order.StatusDriverAssigned.IsDispatchable())
		assert.False(t, order.StatusCompleted.IsDispatchable())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("should format both statuses", func(t *testing.T) {
		err := order.NewInvalidTransitionError(order.StatusInProgress, order.StatusCancelledByCustomer)

		assert.Equal(t, "invalid status transition: IN_PROGRESS -> CANCELLED_BY_CUSTOMER", err.Error())
	})

	t.Run("should unwrap to the sentinel", func(t *testing.T) {
		err := order.NewInvalidTransitionError(order.StatusPending, order.StatusCompleted)

		assert.True(t, errors.Is(err, order.ErrInvalidTransition))
	})
}
