package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// BranchResponse филиал для внешних слоев
type BranchResponse struct {
	ID                               int64
	Code                             string
	Name                             string
	Address                          string
	PhoneNumber                      string
	Email                            string
	OpeningTime                      string
	ClosingTime                      string
	MaxConcurrentAppointmentsPerSlot int
	IsActive                         bool
}

// BranchListResponse страница филиалов
type BranchListResponse struct {
	Items      []*BranchResponse
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

// FromDomainBranch конвертирует доменную модель
func FromDomainBranch(b *domain.Branch) *BranchResponse {
	return &BranchResponse{
		ID:                               b.ID,
		Code:                             b.Code,
		Name:                             b.Name,
		Address:                          b.Address,
		PhoneNumber:                      b.PhoneNumber,
		Email:                            b.Email,
		OpeningTime:                      b.OpeningTime.String(),
		ClosingTime:                      b.ClosingTime.String(),
		MaxConcurrentAppointmentsPerSlot: b.MaxConcurrentAppointmentsPerSlot,
		IsActive:                         b.IsActive,
	}
}

// FromDomainBranchPage собирает страницу
func FromDomainBranchPage(items []*domain.Branch, page, size int, total int64) *BranchListResponse {
	resp := &BranchListResponse{
		Items: make([]*BranchResponse, 0, len(items)),
		Page:  page,
		Size:  size,
		Total: total,
	}
	for _, b := range items {
		resp.Items = append(resp.Items, FromDomainBranch(b))
	}
	if size > 0 {
		resp.TotalPages = int((total + int64(size) - 1) / int64(size))
	}
	return resp
}
