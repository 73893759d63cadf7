package repository

import (
	"context"
	"encoding/json"
	"time"

	"pattamap/config"
	"pattamap/internal/core"
	"pattamap/internal/database/client"
	"pattamap/internal/database/fluentd/model"
)

// LogRepository 統一負責發送 Request/Response/Notification Log 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	projectName   string
	version       string
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, projectName: config.App.Name, version: version}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC")
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, string(core.FluentdRequest), req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC")
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, string(core.FluentdResponse), resp)
}

func (repository *LogRepository) LogNotification(ctx context.Context, notification model.NotificationLog) error {
	if notification.LoggedAt == "" {
		notification.LoggedAt = time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC")
	}
	if notification.ProjectName == "" {
		notification.ProjectName = repository.projectName
	}
	if notification.Version == "" {
		notification.Version = repository.version
	}
	return repository.post(ctx, string(core.FluentdNotification), notification)
}

func (repository *LogRepository) post(ctx context.Context, tag string, record any) error {
	raw, _ := json.Marshal(record)
	var fluentdMessage map[string]any
	_ = json.Unmarshal(raw, &fluentdMessage)
	return repository.fluentdClient.Post(ctx, tag, fluentdMessage)
}
