package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок Postgres, на которые реагирует сервис
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeUniqueViolation      = "23505"
)

// Code возвращает SQLSTATE ошибки или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsSerializationFailure сообщает, что транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}

// IsUniqueViolation сообщает о нарушении уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// Constraint возвращает имя нарушенного ограничения
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
