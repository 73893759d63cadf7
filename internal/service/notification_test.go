package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pattamap/internal/core"
	fluentdModel "pattamap/internal/database/fluentd/model"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/service/push"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ---- fakes ----

type fakeNotificationStore struct {
	inserted     []*model.Notification
	insertErrFor map[string]error // key 為 UserID hex，命中則該筆 insert 失敗
	listed       []*model.Notification
	matched      int64
	markReadErr  error
	unread       int64
	countErr     error
}

func (store *fakeNotificationStore) Insert(_ context.Context, notification *model.Notification) (*model.Notification, error) {
	if err, hit := store.insertErrFor[notification.UserID.Hex()]; hit {
		return nil, err
	}
	created := *notification
	created.ID = primitive.NewObjectID()
	created.CreatedAt = time.Now().UTC()
	store.inserted = append(store.inserted, &created)
	return &created, nil
}

func (store *fakeNotificationStore) ListByUser(_ context.Context, _ primitive.ObjectID, _ core.ListOptions) ([]*model.Notification, error) {
	return store.listed, nil
}

func (store *fakeNotificationStore) MarkRead(_ context.Context, _ primitive.ObjectID, _ primitive.ObjectID) (int64, error) {
	return store.matched, store.markReadErr
}

func (store *fakeNotificationStore) CountUnread(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return store.unread, store.countErr
}

type fakeRecipientResolver struct {
	adminIDs    []primitive.ObjectID
	followerIDs []primitive.ObjectID
	err         error
}

func (resolver *fakeRecipientResolver) ListAdminIDs(_ context.Context) ([]primitive.ObjectID, error) {
	return resolver.adminIDs, resolver.err
}

func (resolver *fakeRecipientResolver) ListFollowerIDs(_ context.Context, _ primitive.ObjectID) ([]primitive.ObjectID, error) {
	return resolver.followerIDs, resolver.err
}

type fakePushSender struct {
	mutex sync.Mutex
	sent  []push.Message
	err   error
}

func (sender *fakePushSender) Send(_ context.Context, message push.Message) error {
	sender.mutex.Lock()
	defer sender.mutex.Unlock()
	sender.sent = append(sender.sent, message)
	return sender.err
}

func (sender *fakePushSender) sentCount() int {
	sender.mutex.Lock()
	defer sender.mutex.Unlock()
	return len(sender.sent)
}

type fakeNotificationAuditor struct {
	mutex   sync.Mutex
	records []fluentdModel.NotificationLog
	err     error
}

func (auditor *fakeNotificationAuditor) LogNotification(_ context.Context, record fluentdModel.NotificationLog) error {
	auditor.mutex.Lock()
	defer auditor.mutex.Unlock()
	auditor.records = append(auditor.records, record)
	return auditor.err
}

type notificationFixture struct {
	service *NotificationService
	store   *fakeNotificationStore
	users   *fakeRecipientResolver
	sender  *fakePushSender
	audit   *fakeNotificationAuditor
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	store := &fakeNotificationStore{}
	users := &fakeRecipientResolver{}
	sender := &fakePushSender{}
	audit := &fakeNotificationAuditor{}
	service, cleanup := NewNotificationService(
		zap.NewNop(), nil, &telemetry.Trace{}, &telemetry.Metric{},
		store, users, sender, audit,
	)
	t.Cleanup(cleanup)
	return &notificationFixture{service: service, store: store, users: users, sender: sender, audit: audit}
}

// ---- Notify ----

func TestNotify_CreatesRecordAndDispatches(t *testing.T) {
	fixture := newNotificationFixture(t)
	userID := primitive.NewObjectID()

	resp, err := fixture.service.Notify(context.Background(), &dto.CreateNotificationDto{
		UserID:  userID.Hex(),
		Type:    core.NotificationAdminAlert,
		I18nKey: "notification.admin_alert",
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if resp == nil || resp.I18nKey != "notification.admin_alert" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(fixture.store.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(fixture.store.inserted))
	}

	// 推播與稽核走非同步佇列，Stop 會先清空再返回
	fixture.service.Stop()
	if fixture.sender.sentCount() != 1 {
		t.Fatalf("expected 1 push delivery, got %d", fixture.sender.sentCount())
	}
	if len(fixture.audit.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(fixture.audit.records))
	}
}

func TestNotify_MissingContentIsSilentlySkipped(t *testing.T) {
	fixture := newNotificationFixture(t)

	resp, err := fixture.service.Notify(context.Background(), &dto.CreateNotificationDto{
		UserID: primitive.NewObjectID().Hex(),
		Type:   core.NotificationAdminAlert,
		Title:  "orphan title", // 有 title 沒 message 視同無內容
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil response, got %+v", resp)
	}
	if len(fixture.store.inserted) != 0 {
		t.Fatal("skipped notification must not be persisted")
	}
}

func TestNotify_BadUserID(t *testing.T) {
	fixture := newNotificationFixture(t)

	_, err := fixture.service.Notify(context.Background(), &dto.CreateNotificationDto{
		UserID:  "not-a-hex",
		Type:    core.NotificationAdminAlert,
		I18nKey: "notification.admin_alert",
	})
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.BAD_REQUEST_BODY {
		t.Fatalf("expected BAD_REQUEST_BODY, got %v", err)
	}
}

func TestNotify_PushFailureDoesNotFailNotify(t *testing.T) {
	fixture := newNotificationFixture(t)
	fixture.sender.err = errors.New("endpoint unreachable")

	resp, err := fixture.service.Notify(context.Background(), &dto.CreateNotificationDto{
		UserID:  primitive.NewObjectID().Hex(),
		Type:    core.NotificationVipPurchased,
		Title:   "VIP",
		Message: "welcome aboard",
	})
	if err != nil || resp == nil {
		t.Fatalf("push failure must not surface: resp=%v err=%v", resp, err)
	}
	if len(fixture.store.inserted) != 1 {
		t.Fatal("notification record must still be persisted")
	}
}

// ---- NotifyMany / NotifyAdmins / NotifyFollowers ----

func TestNotifyMany_EmptyRecipientsIsNoop(t *testing.T) {
	fixture := newNotificationFixture(t)

	fixture.service.NotifyMany(context.Background(), nil, core.NotificationFollowerUpdate, "notification.follower_update", nil, primitive.NilObjectID)

	if len(fixture.store.inserted) != 0 {
		t.Fatal("empty fan-out must not insert")
	}
}

func TestNotifyMany_SingleFailureDoesNotStopOthers(t *testing.T) {
	fixture := newNotificationFixture(t)
	good1 := primitive.NewObjectID()
	bad := primitive.NewObjectID()
	good2 := primitive.NewObjectID()
	fixture.store.insertErrFor = map[string]error{bad.Hex(): errors.New("write concern error")}

	fixture.service.NotifyMany(
		context.Background(),
		[]primitive.ObjectID{good1, bad, good2},
		core.NotificationFollowerUpdate,
		"notification.follower_update",
		map[string]string{"employeeName": "June"},
		primitive.NewObjectID(),
	)

	if len(fixture.store.inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(fixture.store.inserted))
	}
	for _, created := range fixture.store.inserted {
		if created.UserID == bad {
			t.Fatal("failed recipient must not be persisted")
		}
	}
}

func TestNotifyAdmins_ResolverFailureAbortsQuietly(t *testing.T) {
	fixture := newNotificationFixture(t)
	fixture.users.err = errors.New("connection reset")

	fixture.service.NotifyAdmins(context.Background(), core.NotificationAdminAlert, "notification.admin_alert", nil)

	if len(fixture.store.inserted) != 0 {
		t.Fatal("resolver failure must abort the fan-out")
	}
}

func TestNotifyFollowers_RelatedIDCarriesEmployee(t *testing.T) {
	fixture := newNotificationFixture(t)
	follower := primitive.NewObjectID()
	employeeID := primitive.NewObjectID()
	fixture.users.followerIDs = []primitive.ObjectID{follower}

	fixture.service.NotifyFollowers(context.Background(), employeeID, core.NotificationFollowerUpdate, "notification.follower_update", nil)

	if len(fixture.store.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(fixture.store.inserted))
	}
	if fixture.store.inserted[0].RelatedID != employeeID {
		t.Fatal("follower notification must reference the employee")
	}
}

// ---- MarkAsRead / UnreadCount ----

func TestMarkAsRead_NotOwnedIsNotFound(t *testing.T) {
	fixture := newNotificationFixture(t)
	fixture.store.matched = 0

	err := fixture.service.MarkAsRead(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestMarkAsRead_Matched(t *testing.T) {
	fixture := newNotificationFixture(t)
	fixture.store.matched = 1

	if err := fixture.service.MarkAsRead(context.Background(), primitive.NewObjectID(), primitive.NewObjectID()); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
}

func TestUnreadCount_ReturnsZeroOnError(t *testing.T) {
	fixture := newNotificationFixture(t)
	fixture.store.unread = 7
	fixture.store.countErr = errors.New("cursor timeout")

	if count := fixture.service.UnreadCount(context.Background(), primitive.NewObjectID()); count != 0 {
		t.Fatalf("expected safe default 0, got %d", count)
	}

	fixture.store.countErr = nil
	if count := fixture.service.UnreadCount(context.Background(), primitive.NewObjectID()); count != 7 {
		t.Fatalf("expected 7, got %d", count)
	}
}
