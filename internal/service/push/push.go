package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pattamap/config"

	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

// Message 單一收件者的推播內容
type Message struct {
	UserID     string            `json:"userId"`
	Type       string            `json:"type"`
	I18nKey    string            `json:"i18nKey,omitempty"`
	I18nParams map[string]string `json:"i18nParams,omitempty"`
	Title      string            `json:"title,omitempty"`
	Message    string            `json:"message,omitempty"`
	RelatedID  string            `json:"relatedId,omitempty"`
}

// Sender 對外推播端點。通知紀錄永遠先落庫，推播失敗不影響主流程。
type Sender interface {
	Send(contextValue context.Context, message Message) error
}

func NewSender(conf *config.Configuration, logger *zap.Logger) Sender {
	if conf == nil || conf.Push.EndpointUrl == "" {
		logger.Info("push endpoint not configured, deliveries disabled")
		return &noopSender{}
	}
	timeout := defaultTimeout
	if conf.Push.Timeout > 0 {
		timeout = time.Duration(conf.Push.Timeout) * time.Millisecond
	}
	return &httpSender{
		endpointUrl: conf.Push.EndpointUrl,
		apiKey:      conf.Push.ApiKey,
		client:      &http.Client{Timeout: timeout},
	}
}

type httpSender struct {
	endpointUrl string
	apiKey      string
	client      *http.Client
}

func (sender *httpSender) Send(contextValue context.Context, message Message) error {
	payload, marshalError := json.Marshal(message)
	if marshalError != nil {
		return marshalError
	}

	request, requestError := http.NewRequestWithContext(contextValue, http.MethodPost, sender.endpointUrl, bytes.NewReader(payload))
	if requestError != nil {
		return requestError
	}
	request.Header.Set("Content-Type", "application/json")
	if sender.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+sender.apiKey)
	}

	response, sendError := sender.client.Do(request)
	if sendError != nil {
		return sendError
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint returned %d", response.StatusCode)
	}
	return nil
}

type noopSender struct{}

func (sender *noopSender) Send(_ context.Context, _ Message) error {
	return nil
}
