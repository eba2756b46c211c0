package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/lms-console/internal/model"
	"github.com/htran/lms-console/internal/realtime"
)

// fakeService is an in-memory notification backend for tests.
type fakeService struct {
	snapshot []model.Notification
	listErr  error
	markErr  error
	marked   []string
}

func (f *fakeService) ListNotifications(context.Context) ([]model.Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Notification, len(f.snapshot))
	copy(out, f.snapshot)
	return out, nil
}

func (f *fakeService) MarkNotificationRead(_ context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, id)
	return nil
}

func snapshotAt(id string, minsAgo int, read bool) model.Notification {
	return model.Notification{
		ID:        id,
		Kind:      model.NotificationGlobal,
		Message:   "snapshot " + id,
		Read:      read,
		CreatedAt: time.Now().Add(-time.Duration(minsAgo) * time.Minute),
	}
}

func TestLoadSeedsSnapshotOrder(t *testing.T) {
	svc := &fakeService{snapshot: []model.Notification{
		snapshotAt("n1", 10, false),
		snapshotAt("n2", 50, true),
	}}
	r := NewReconciler(svc)

	require.NoError(t, r.Load(context.Background()))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "n1", all[0].ID)
	assert.Equal(t, "n2", all[1].ID)
}

func TestPushedEventIsPrependedUnread(t *testing.T) {
	svc := &fakeService{snapshot: []model.Notification{
		snapshotAt("n1", 10, false),
		snapshotAt("n2", 50, true),
	}}
	r := NewReconciler(svc)
	require.NoError(t, r.Load(context.Background()))

	n := r.ApplyLessonPublished(realtime.LessonPublished{
		LessonID:   "l7",
		Title:      "Concurrency",
		Instructor: "Rob",
	})

	assert.False(t, n.Read)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "/dashboard/lessons/l7", n.Link)

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{n.ID, "n1", "n2"},
		[]string{all[0].ID, all[1].ID, all[2].ID})
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc := &fakeService{snapshot: []model.Notification{snapshotAt("n1", 5, false)}}
	r := NewReconciler(svc)
	require.NoError(t, r.Load(context.Background()))

	require.NoError(t, r.MarkRead(context.Background(), "n1"))
	require.NoError(t, r.MarkRead(context.Background(), "n1"))

	assert.True(t, r.All()[0].Read)
	// The backend is patched once; the second call is a no-op.
	assert.Equal(t, []string{"n1"}, svc.marked)
}

func TestMarkReadOnTempIDSkipsBackend(t *testing.T) {
	svc := &fakeService{}
	r := NewReconciler(svc)

	n := r.ApplyLessonPublished(realtime.LessonPublished{Title: "T", Instructor: "I"})
	require.NoError(t, r.MarkRead(context.Background(), n.ID))

	assert.True(t, r.All()[0].Read)
	assert.Empty(t, svc.marked)
}

func TestMarkReadFailureLeavesRecordUnread(t *testing.T) {
	svc := &fakeService{
		snapshot: []model.Notification{snapshotAt("n1", 5, false)},
		markErr:  errors.New("network down"),
	}
	r := NewReconciler(svc)
	require.NoError(t, r.Load(context.Background()))

	err := r.MarkRead(context.Background(), "n1")
	require.Error(t, err)
	assert.False(t, r.All()[0].Read)
}

func TestMarkAllReadThenMarkRead(t *testing.T) {
	svc := &fakeService{snapshot: []model.Notification{
		snapshotAt("n1", 5, false),
		snapshotAt("n2", 9, false),
	}}
	r := NewReconciler(svc)
	require.NoError(t, r.Load(context.Background()))

	r.MarkAllRead()
	r.MarkAllRead()
	require.NoError(t, r.MarkRead(context.Background(), "n1"))

	for _, n := range r.All() {
		assert.True(t, n.Read)
	}
	assert.Zero(t, r.UnreadCount())
}

func TestSnapshotFailureLeavesCollectionEmpty(t *testing.T) {
	svc := &fakeService{listErr: errors.New("boom")}
	r := NewReconciler(svc)

	err := r.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, r.All())

	// Recovery path: a later load succeeds and seeds normally.
	svc.listErr = nil
	svc.snapshot = []model.Notification{snapshotAt("n1", 1, false)}
	require.NoError(t, r.Load(context.Background()))
	assert.Len(t, r.All(), 1)
}

func TestUnreadCount(t *testing.T) {
	svc := &fakeService{snapshot: []model.Notification{
		snapshotAt("n1", 5, false),
		snapshotAt("n2", 9, true),
	}}
	r := NewReconciler(svc)
	require.NoError(t, r.Load(context.Background()))

	assert.Equal(t, 1, r.UnreadCount())
	r.ApplyLessonPublished(realtime.LessonPublished{Title: "T", Instructor: "I"})
	assert.Equal(t, 2, r.UnreadCount())
}
