package cancel_appointment

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса на отмену записи
type Request struct {
	Email            string  // Email клиента, указанный при записи (пустой - без проверки)
	BookingReference string  // Номер бронирования
	Reason           *string // Причина отмены (опционально)
}

// Response модель ответа с отмененной записью
type Response struct {
	Appointment *domain.Appointment
}
