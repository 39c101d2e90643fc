package slots

import "errors"

// ErrInternal возвращается, если не удалось получить занятость слотов
var ErrInternal = errors.New("slots: internal error")
