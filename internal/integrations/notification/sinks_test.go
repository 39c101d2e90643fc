package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestHTTPSink_Send(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second, logger.NewNop())
	event := NewEvent(domain.EventAppointmentConfirmed, testAppointment(), time.Now())

	require.NoError(t, sink.Send(context.Background(), event))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.Payload.CustomerName)
}

func TestHTTPSink_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrRejected},
		{http.StatusInternalServerError, ErrInvalidResponse},
		{http.StatusServiceUnavailable, ErrInvalidResponse},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))

		err := NewHTTPSink(srv.URL, time.Second, logger.NewNop()).
			Send(context.Background(), NewEvent(domain.EventAppointmentConfirmed, testAppointment(), time.Now()))
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)

		srv.Close()
	}
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaSink_RoutesByEventType(t *testing.T) {
	w := &fakeWriter{}
	sink := NewKafkaSink(w, "appointments.confirmed", "appointments.cancelled")

	require.NoError(t, sink.Send(context.Background(), NewEvent(domain.EventAppointmentConfirmed, testAppointment(), time.Now())))
	require.NoError(t, sink.Send(context.Background(), NewEvent(domain.EventAppointmentCancelled, testAppointment(), time.Now())))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "appointments.confirmed", w.msgs[0].Topic)
	assert.Equal(t, "appointments.cancelled", w.msgs[1].Topic)
	assert.Equal(t, []byte("BK1A2B3C4D"), w.msgs[0].Key)
	assert.Equal(t, "event_type", w.msgs[0].Headers[1].Key)
	assert.Equal(t, []byte(domain.EventAppointmentConfirmed), w.msgs[0].Headers[1].Value)
}

func TestKafkaSink_UnknownEventType(t *testing.T) {
	sink := NewKafkaSink(&fakeWriter{}, "a", "b")
	err := sink.Send(context.Background(), Event{Type: "appointment.rescheduled"})
	require.ErrorIs(t, err, ErrInternal)
}

func TestKafkaSink_WriteError(t *testing.T) {
	sink := NewKafkaSink(&fakeWriter{err: errors.New("broker down")}, "a", "b")
	err := sink.Send(context.Background(), NewEvent(domain.EventAppointmentConfirmed, testAppointment(), time.Now()))
	require.ErrorIs(t, err, ErrInternal)
}

type failingSink struct{ calls int }

func (s *failingSink) Name() string { return "flaky" }

func (s *failingSink) Send(context.Context, Event) error {
	s.calls++
	return errors.New("timeout")
}

func TestBreakerSink_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &failingSink{}
	sink := NewBreakerSink(next, logger.NewNop())
	event := NewEvent(domain.EventAppointmentConfirmed, testAppointment(), time.Now())

	for i := 0; i < breakerConsecutiveFailures; i++ {
		err := sink.Send(context.Background(), event)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	err := sink.Send(context.Background(), event)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, breakerConsecutiveFailures, next.calls, "open breaker must not call the sink")
	assert.Equal(t, "flaky", sink.Name())
}
