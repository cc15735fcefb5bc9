package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkThenUnmarkRestoresState(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user, course := uuid.New(), uuid.New()
	kept, toggled := uuid.New(), uuid.New()

	require.NoError(t, e.progress.MarkCompleted(ctx, user, course, kept))
	before, err := e.progress.ListCompleted(ctx, user, course)
	require.NoError(t, err)

	require.NoError(t, e.progress.MarkCompleted(ctx, user, course, toggled))
	require.NoError(t, e.progress.MarkIncomplete(ctx, user, course, toggled))

	after, err := e.progress.ListCompleted(ctx, user, course)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)

	empty, err := e.progress.ListCompleted(ctx, user, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
