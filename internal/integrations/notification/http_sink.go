package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSink клиент внешнего сервиса уведомлений
type HTTPSink struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewHTTPSink создает новый экземпляр клиента сервиса уведомлений
func NewHTTPSink(baseURL string, timeout time.Duration, log Logger) *HTTPSink {
	return &HTTPSink{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (s *HTTPSink) Name() string {
	return "http"
}

// Send отправляет событие POST-запросом
func (s *HTTPSink) Send(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/internal/notifications", s.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", event.ID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		s.log.Info("HTTPSink: %s for %s delivered", event.Type, event.Payload.BookingReference)
		return nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
