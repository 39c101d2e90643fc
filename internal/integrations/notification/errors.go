package notification

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notification client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса уведомлений
	ErrInvalidResponse = errors.New("notification client: invalid response")

	// ErrRejected возвращается, когда сервис уведомлений отклонил событие
	ErrRejected = errors.New("notification client: event rejected")

	// ErrUnavailable возвращается, когда канал временно отключен (circuit breaker открыт)
	ErrUnavailable = errors.New("notification client: channel unavailable")
)
