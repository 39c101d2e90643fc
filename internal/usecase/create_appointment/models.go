package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	BranchID            int64     // ID филиала
	FirstName           string    // Имя клиента
	LastName            string    // Фамилия клиента
	Email               string    // Email для подтверждения
	PhoneNumber         string    // Контактный телефон
	AppointmentDateTime time.Time // Время начала по часам филиала
	DurationMinutes     int       // Длительность в минутах (>= 15)
	Purpose             *string   // Цель визита (опционально)
	Notes               *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
