package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	BranchID        int64          `json:"branchId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []TimeSlotJSON `json:"slots"`
}

// TimeSlotJSON модель временного слота, время по часам филиала
type TimeSlotJSON struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Available       bool   `json:"available"`
	CurrentBookings int    `json:"currentBookings"`
	MaxBookings     int    `json:"maxBookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]TimeSlotJSON, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlotJSON{
			StartTime:       slot.Start.Format(domain.LocalDateTimeFormat),
			EndTime:         slot.End.Format(domain.LocalDateTimeFormat),
			Available:       slot.Available,
			CurrentBookings: slot.CurrentBookings,
			MaxBookings:     slot.MaxBookings,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BranchID:        resp.BranchID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(branchID int64, dateStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	// Дата трактуется как календарный день филиала
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BranchID: branchID,
		Date:     date,
	}, nil
}
