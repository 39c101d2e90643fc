package create_appointment

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[\+]?[0-9\-\s\(\)]+$`)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BranchID <= 0 {
		return invalidInput("Branch is required")
	}

	if err := validateRequired(req.FirstName, "First name", domain.MaxNameLength); err != nil {
		return err
	}

	if err := validateRequired(req.LastName, "Last name", domain.MaxNameLength); err != nil {
		return err
	}

	if err := validateRequired(req.Email, "Email", domain.MaxEmailLength); err != nil {
		return err
	}
	if !isValidEmail(req.Email) {
		return invalidInput("Email must be valid")
	}

	if err := validateRequired(req.PhoneNumber, "Phone number", domain.MaxPhoneLength); err != nil {
		return err
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		return invalidInput("Phone number format is invalid")
	}

	if req.AppointmentDateTime.IsZero() {
		return invalidInput("Appointment date and time is required")
	}

	if req.DurationMinutes < domain.MinDurationMinutes {
		return invalidInput(fmt.Sprintf("Appointment duration must be at least %d minutes", domain.MinDurationMinutes))
	}

	if req.Purpose != nil && utf8.RuneCountInString(*req.Purpose) > domain.MaxPurposeLength {
		return invalidInput(fmt.Sprintf("Purpose must not exceed %d characters", domain.MaxPurposeLength))
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return invalidInput(fmt.Sprintf("Notes must not exceed %d characters", domain.MaxNotesLength))
	}

	return nil
}

// validateFuture проверяет, что запись начинается строго позже now
func validateFuture(dateTime, now time.Time) error {
	if !dateTime.After(now) {
		return ErrDateTimeInPast
	}
	return nil
}

func validateRequired(value, field string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return invalidInput(field + " is required")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return invalidInput(fmt.Sprintf("%s must not exceed %d characters", field, maxLen))
	}
	return nil
}

// isValidEmail принимает только голый адрес, без отображаемого имени
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(addr.Address, "@")
}
