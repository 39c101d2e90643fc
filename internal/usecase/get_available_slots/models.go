package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	BranchID int64     // ID филиала
	Date     time.Time // Дата (время суток игнорируется), в часовом поясе филиала
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time         // Дата, на которую запрашивались слоты
	BranchID        int64             // ID филиала
	DurationMinutes int               // Длительность слота в минутах
	Slots           []domain.TimeSlot // Слоты с занятостью, в том числе заполненные
}
