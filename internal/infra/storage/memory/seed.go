package memory

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// DemoBranches филиалы для локального запуска с storage.driver = "memory".
// Совпадают с migrations/002_seed_branches.sql.
func DemoBranches() []*domain.Branch {
	now := time.Now().UTC()
	branch := func(id int64, code, name, address, phone, email, open, closing string, capacity int) *domain.Branch {
		return &domain.Branch{
			ID:                               id,
			Code:                             code,
			Name:                             name,
			Address:                          address,
			PhoneNumber:                      phone,
			Email:                            email,
			OpeningTime:                      types.MustTimeString(open),
			ClosingTime:                      types.MustTimeString(closing),
			MaxConcurrentAppointmentsPerSlot: capacity,
			IsActive:                         true,
			CreatedAt:                        now,
			UpdatedAt:                        now,
		}
	}

	return []*domain.Branch{
		branch(1, "CPT001", "Cape Town Central", "100 Adderley Street, Cape Town", "+27 21 000 0001", "cpt@branches.example.com", "08:00", "17:00", 3),
		branch(2, "JHB001", "Johannesburg Sandton", "5 Rivonia Road, Sandton", "+27 11 000 0002", "jhb@branches.example.com", "09:00", "18:00", 4),
		branch(3, "DBN001", "Durban Umhlanga", "12 Lighthouse Road, Umhlanga", "+27 31 000 0003", "dbn@branches.example.com", "08:30", "16:30", 2),
	}
}
