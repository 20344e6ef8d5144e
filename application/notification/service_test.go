package notification

import (
	"context"
	"testing"

	"storefront/domain/notification"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*ApplicationService, *mocks.NotificationRepository) {
	t.Helper()
	repo := mocks.NewNotificationRepository()
	return NewApplicationService(repo), repo
}

func seed(t *testing.T, repo *mocks.NotificationRepository, recipient shared.Actor, title string) *notification.Notification {
	t.Helper()
	n := notification.New(repo.NextIdentity(), recipient, notification.KindSystemMessage, title, "body", "")
	require.NoError(t, repo.Save(context.Background(), n))
	return n
}

func TestListAndCountUnread(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	me := shared.UserActor("user-1")

	seed(t, repo, me, "first")
	seed(t, repo, me, "second")
	seed(t, repo, shared.UserActor("user-2"), "foreign")

	all, err := svc.List(ctx, me, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := svc.CountUnread(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMarkRead(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	me := shared.UserActor("user-1")
	n := seed(t, repo, me, "hello")

	read, err := svc.MarkRead(ctx, me, n.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	// Marking twice is a no-op.
	_, err = svc.MarkRead(ctx, me, n.ID)
	require.NoError(t, err)

	unread, err := svc.List(ctx, me, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMarkAllRead(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	me := shared.UserActor("user-1")

	seed(t, repo, me, "first")
	seed(t, repo, me, "second")

	require.NoError(t, svc.MarkAllRead(ctx, me))

	count, err := svc.CountUnread(ctx, me)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestForeignNotificationsReadAsNotFound(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	n := seed(t, repo, shared.UserActor("user-2"), "private")

	_, err := svc.MarkRead(ctx, shared.UserActor("user-1"), n.ID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)

	err = svc.Delete(ctx, shared.UserActor("user-1"), n.ID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	me := shared.UserActor("user-1")
	n := seed(t, repo, me, "gone")

	require.NoError(t, svc.Delete(ctx, me, n.ID))

	all, err := svc.List(ctx, me, false)
	require.NoError(t, err)
	assert.Empty(t, all)
}
