package service

import (
	"context"
	"sync"
	"time"

	"pattamap/config"
	"pattamap/internal/core"
	fluentdModel "pattamap/internal/database/fluentd/model"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/service/push"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultPushQueueSize = 256

type notificationStore interface {
	Insert(contextValue context.Context, notification *model.Notification) (*model.Notification, error)
	ListByUser(contextValue context.Context, userIdentifier primitive.ObjectID, listOptions core.ListOptions) ([]*model.Notification, error)
	MarkRead(contextValue context.Context, notificationIdentifier primitive.ObjectID, userIdentifier primitive.ObjectID) (int64, error)
	CountUnread(contextValue context.Context, userIdentifier primitive.ObjectID) (int64, error)
}

type recipientResolver interface {
	ListAdminIDs(contextValue context.Context) ([]primitive.ObjectID, error)
	ListFollowerIDs(contextValue context.Context, employeeIdentifier primitive.ObjectID) ([]primitive.ObjectID, error)
}

type notificationAuditor interface {
	LogNotification(contextValue context.Context, record fluentdModel.NotificationLog) error
}

// NotificationService 通知紀錄永遠先落庫；推播與稽核日誌都是
// best-effort，任何一步失敗只記 log，不影響主流程。
type NotificationService struct {
	logger        *zap.Logger
	trace         *telemetry.Trace
	metric        *telemetry.Metric
	notifications notificationStore
	users         recipientResolver
	sender        push.Sender
	audit         notificationAuditor

	queue    chan push.Message
	stopOnce sync.Once
	done     chan struct{}
}

func NewNotificationService(
	logger *zap.Logger,
	conf *config.Configuration,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	notifications notificationStore,
	users recipientResolver,
	sender push.Sender,
	audit notificationAuditor,
) (*NotificationService, func()) {

	queueSize := defaultPushQueueSize
	if conf != nil && conf.Push.QueueSize > 0 {
		queueSize = conf.Push.QueueSize
	}
	s := &NotificationService{
		logger:        logger,
		trace:         trace,
		metric:        metric,
		notifications: notifications,
		users:         users,
		sender:        sender,
		audit:         audit,
		queue:         make(chan push.Message, queueSize),
		done:          make(chan struct{}),
	}
	go s.dispatchLoop()

	cleanup := func() { s.Stop() }
	return s, cleanup
}

// Stop 關閉派送佇列並等 worker 清空剩餘訊息
func (s *NotificationService) Stop() {
	s.stopOnce.Do(func() {
		close(s.queue)
		<-s.done
	})
}

// Notify 為單一收件者建立通知。內容缺漏（沒有 i18nKey 也沒有
// title/message）時不報錯：記 warning 後靜默略過，回傳 nil, nil。
func (s *NotificationService) Notify(ctx context.Context, request *dto.CreateNotificationDto) (*dto.NotificationResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if request.I18nKey == "" && (request.Title == "" || request.Message == "") {
		s.logger.Warn("notification skipped: no content",
			zap.String("userId", request.UserID),
			zap.String("type", string(request.Type)))
		return nil, nil
	}

	userID, parseError := primitive.ObjectIDFromHex(request.UserID)
	if parseError != nil {
		return nil, cErr.BadRequestBody("invalid user id")
	}

	notification := &model.Notification{
		UserID:     userID,
		Type:       request.Type,
		I18nKey:    request.I18nKey,
		I18nParams: request.I18nParams,
		Title:      request.Title,
		Message:    request.Message,
	}
	if request.RelatedID != "" {
		relatedID, relatedError := primitive.ObjectIDFromHex(request.RelatedID)
		if relatedError != nil {
			return nil, cErr.BadRequestBody("invalid related id")
		}
		notification.RelatedID = relatedID
	}

	created, insertError := s.notifications.Insert(ctx, notification)
	if insertError != nil {
		return nil, cErr.DatabaseError("database Insert notification error")
	}
	s.countSent(request.Type)
	s.enqueuePush(created)
	s.auditLog(ctx, created)

	return modelToNotificationResponseDto(created), nil
}

// NotifyMany 對一批收件者 fan-out 同一份內容。空清單直接 no-op。
// 單一收件者失敗不中斷其他人，最後統一回報失敗數。
func (s *NotificationService) NotifyMany(
	ctx context.Context,
	userIDs []primitive.ObjectID,
	notificationType core.NotificationType,
	i18nKey string,
	i18nParams map[string]string,
	relatedID primitive.ObjectID,
) {
	if len(userIDs) == 0 {
		return
	}
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	meta := core.TraceNotifyMeta{Type: string(notificationType), RecipientCount: len(userIDs)}

	createdCount := 0
	for _, userID := range userIDs {
		notification := &model.Notification{
			UserID:     userID,
			Type:       notificationType,
			I18nKey:    i18nKey,
			I18nParams: i18nParams,
			RelatedID:  relatedID,
		}
		created, insertError := s.notifications.Insert(ctx, notification)
		if insertError != nil {
			s.logger.Warn("notification fan-out: insert failed",
				zap.String("userId", userID.Hex()),
				zap.Error(insertError))
			continue
		}
		createdCount++
		s.countSent(notificationType)
		s.enqueuePush(created)
		s.auditLog(ctx, created)
	}
	meta.CreatedCount = createdCount
	s.trace.ApplyTraceAttributes(span, meta)

	if createdCount < len(userIDs) {
		s.logger.Warn("notification fan-out finished with failures",
			zap.String("type", string(notificationType)),
			zap.Int("recipients", len(userIDs)),
			zap.Int("created", createdCount))
	}
}

// NotifyAdmins 對所有管理員發送。收件者查詢失敗時放棄本次通知，只記 log。
func (s *NotificationService) NotifyAdmins(ctx context.Context, notificationType core.NotificationType, i18nKey string, i18nParams map[string]string) {
	adminIDs, err := s.users.ListAdminIDs(ctx)
	if err != nil {
		s.logger.Warn("notification: resolving admin recipients failed", zap.Error(err))
		return
	}
	s.NotifyMany(ctx, adminIDs, notificationType, i18nKey, i18nParams, primitive.NilObjectID)
}

// NotifyFollowers 對追蹤此員工的用戶發送
func (s *NotificationService) NotifyFollowers(ctx context.Context, employeeID primitive.ObjectID, notificationType core.NotificationType, i18nKey string, i18nParams map[string]string) {
	followerIDs, err := s.users.ListFollowerIDs(ctx, employeeID)
	if err != nil {
		s.logger.Warn("notification: resolving follower recipients failed",
			zap.String("employeeId", employeeID.Hex()),
			zap.Error(err))
		return
	}
	s.NotifyMany(ctx, followerIDs, notificationType, i18nKey, i18nParams, employeeID)
}

// ListNotifications 收件匣
func (s *NotificationService) ListNotifications(ctx context.Context, userID primitive.ObjectID, request *dto.ListNotificationsDto) ([]*dto.NotificationResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	size := request.Size
	if size == 0 {
		size = 20
	}
	listOptions := core.ListOptions{Page: request.Page, Size: size}
	if request.UnreadOnly {
		listOptions.Filter = bson.M{"isRead": false}
	}
	notifications, err := s.notifications.ListByUser(ctx, userID, listOptions)
	if err != nil {
		return nil, cErr.DatabaseError("database ListByUser error")
	}
	resp := make([]*dto.NotificationResponseDto, len(notifications))
	for i, notification := range notifications {
		resp[i] = modelToNotificationResponseDto(notification)
	}
	return resp, nil
}

// MarkAsRead 只有收件者本人能標記；比對不到（不存在或非本人）回 404
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	matched, err := s.notifications.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return cErr.DatabaseError("database MarkRead error")
	}
	if matched == 0 {
		return cErr.NotFound("notification not found")
	}
	return nil
}

// UnreadCount 未讀數；查詢失敗回 0 當安全預設，不讓角標打斷頁面
func (s *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) int64 {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Warn("unread count failed, returning 0",
			zap.String("userId", userID.Hex()),
			zap.Error(err))
		return 0
	}
	return count
}

// enqueuePush 佇列滿了直接丟棄；推播本來就不保證送達
func (s *NotificationService) enqueuePush(notification *model.Notification) {
	message := push.Message{
		UserID:     notification.UserID.Hex(),
		Type:       string(notification.Type),
		I18nKey:    notification.I18nKey,
		I18nParams: notification.I18nParams,
		Title:      notification.Title,
		Message:    notification.Message,
	}
	if !notification.RelatedID.IsZero() {
		message.RelatedID = notification.RelatedID.Hex()
	}
	select {
	case s.queue <- message:
	default:
		s.countPushFail("queue_full")
		s.logger.Warn("push queue full, delivery dropped", zap.String("userId", message.UserID))
	}
}

func (s *NotificationService) dispatchLoop() {
	defer close(s.done)
	for message := range s.queue {
		ctx, _, end := s.trace.WithSpan(context.Background(), string(core.SpanPushDelivery))
		deliveryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if sendError := s.sender.Send(deliveryCtx, message); sendError != nil {
			s.countPushFail("send_error")
			s.logger.Warn("push delivery failed",
				zap.String("userId", message.UserID),
				zap.String("type", message.Type),
				zap.Error(sendError))
		}
		cancel()
		end(nil)
	}
}

// auditLog 通知稽核紀錄丟給 Fluentd；失敗只記 log
func (s *NotificationService) auditLog(ctx context.Context, notification *model.Notification) {
	record := fluentdModel.NotificationLog{
		NotificationID: notification.ID.Hex(),
		UserID:         notification.UserID.Hex(),
		Type:           string(notification.Type),
		I18nKey:        notification.I18nKey,
		CreatedTS:      notification.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !notification.RelatedID.IsZero() {
		record.RelatedID = notification.RelatedID.Hex()
	}
	if postError := s.audit.LogNotification(ctx, record); postError != nil {
		s.logger.Warn("notification audit log failed", zap.Error(postError))
	}
}

func (s *NotificationService) countSent(notificationType core.NotificationType) {
	if s.metric != nil && s.metric.NotificationSentTotal != nil {
		s.metric.NotificationSentTotal.WithLabelValues(string(notificationType)).Inc()
	}
}

func (s *NotificationService) countPushFail(reason string) {
	if s.metric != nil && s.metric.PushFailTotal != nil {
		s.metric.PushFailTotal.WithLabelValues(reason).Inc()
	}
}

func modelToNotificationResponseDto(notification *model.Notification) *dto.NotificationResponseDto {
	resp := &dto.NotificationResponseDto{
		ID:         notification.ID.Hex(),
		Type:       notification.Type,
		I18nKey:    notification.I18nKey,
		I18nParams: notification.I18nParams,
		Title:      notification.Title,
		Message:    notification.Message,
		IsRead:     notification.IsRead,
		ReadAt:     notification.ReadAt,
		CreatedAt:  notification.CreatedAt,
	}
	if !notification.RelatedID.IsZero() {
		resp.RelatedID = notification.RelatedID.Hex()
	}
	return resp
}
