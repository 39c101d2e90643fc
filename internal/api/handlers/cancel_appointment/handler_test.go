package cancel_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validation"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got *cancelAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	reason := domain.DefaultCancellationReason
	if req.Reason != nil {
		reason = *req.Reason
	}
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	appt := &domain.Appointment{
		ID:                  7,
		BookingReference:    req.BookingReference,
		AppointmentDateTime: at.Add(24 * time.Hour),
		Status:              domain.StatusConfirmed,
	}
	appt.Cancel(reason, at)
	return &cancelAppointment.Response{Appointment: appt}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	h := NewHandler(uc, time.UTC, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, target, nil))
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/appointments/cancel?email=john@example.com&bookingReference=bk1a2b3c4d&reason=Sick")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "Sick", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)

	assert.Equal(t, "BK1A2B3C4D", uc.got.BookingReference)
	assert.Equal(t, "john@example.com", uc.got.Email)
}

func TestHandle_NoReasonLeavesDefaultToUseCase(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/appointments/cancel?email=john@example.com&bookingReference=BK1A2B3C4D")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.Reason)
}

func TestHandle_BadParams(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/api/v1/appointments/cancel?bookingReference=BK1A2B3C4D")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(uc, "/api/v1/appointments/cancel?email=john@example.com&bookingReference=REF-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{cancelAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{validation.ErrAlreadyCancelled, http.StatusBadRequest},
		{validation.ErrPastAppointment, http.StatusBadRequest},
		{cancelAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := serve(&fakeUseCase{err: tc.err}, "/api/v1/appointments/cancel?email=a@b.co&bookingReference=BK1A2B3C4D")
		assert.Equal(t, tc.status, rec.Code, "%v", tc.err)
	}
}
