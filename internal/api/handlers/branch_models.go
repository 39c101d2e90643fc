package handlers

import "github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"

// BranchResponse HTTP модель филиала
type BranchResponse struct {
	ID                               int64  `json:"id"`
	Code                             string `json:"code"`
	Name                             string `json:"name"`
	Address                          string `json:"address"`
	PhoneNumber                      string `json:"phoneNumber"`
	Email                            string `json:"email"`
	OpeningTime                      string `json:"openingTime"`
	ClosingTime                      string `json:"closingTime"`
	MaxConcurrentAppointmentsPerSlot int    `json:"maxConcurrentAppointmentsPerSlot"`
	IsActive                         bool   `json:"isActive"`
}

// BranchPageResponse HTTP модель страницы филиалов
type BranchPageResponse struct {
	Content       []*BranchResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

func FromBranch(b *models.BranchResponse) *BranchResponse {
	return &BranchResponse{
		ID:                               b.ID,
		Code:                             b.Code,
		Name:                             b.Name,
		Address:                          b.Address,
		PhoneNumber:                      b.PhoneNumber,
		Email:                            b.Email,
		OpeningTime:                      b.OpeningTime,
		ClosingTime:                      b.ClosingTime,
		MaxConcurrentAppointmentsPerSlot: b.MaxConcurrentAppointmentsPerSlot,
		IsActive:                         b.IsActive,
	}
}

func FromBranchPage(p *models.BranchListResponse) *BranchPageResponse {
	content := make([]*BranchResponse, 0, len(p.Items))
	for _, b := range p.Items {
		content = append(content, FromBranch(b))
	}
	return &BranchPageResponse{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.Total,
		TotalPages:    p.TotalPages,
	}
}
