package search_branches

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
)

type BranchService interface {
	Search(ctx context.Context, query string, page, size int) (*models.BranchListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
