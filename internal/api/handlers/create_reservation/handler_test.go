package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarahan/LCR-ReservationService/internal/admission"
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	createReservation "github.com/ekarahan/LCR-ReservationService/internal/usecase/create_reservation"
)

// Моки

type mockUseCase struct {
	executeFunc func(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	return m.executeFunc(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Хелперы

func validBody() []byte {
	b, _ := json.Marshal(CreateReservationRequest{
		ComputerID: 7,
		Date:       "2026-09-01",
		StartTime:  "10:00",
		EndTime:    "11:30",
	})
	return b
}

// Запрос проходит через middleware.Auth, как в боевом роутере
func doRequest(uc CreateReservationUseCase, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func studentHeaders() map[string]string {
	return map[string]string{
		"X-User-Email": "alice@university.edu",
		"X-User-Role":  "student",
	}
}

// Тесты

func TestHandle_Created(t *testing.T) {
	email := "alice@university.edu"
	uc := &mockUseCase{
		executeFunc: func(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
			assert.Equal(t, email, req.RequesterEmail)
			assert.Equal(t, int64(7), req.ComputerID)
			return &createReservation.Response{
				ID:              42,
				StudentEmail:    &email,
				ComputerID:      7,
				LabID:           3,
				Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				StartTime:       "10:00",
				EndTime:         "11:30",
				DurationMinutes: 90,
				Status:          "pending",
			}, nil
		},
	}

	rec := doRequest(uc, validBody(), studentHeaders())

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 90, resp.DurationMinutes)
}

// Отказы конвейера допуска по корректно сформированному запросу — это
// конфликт состояния, а не ошибка формата: все четыре отдают 409
func TestHandle_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid interval", admission.ErrInvalidInterval, http.StatusBadRequest},
		{"slot unavailable", admission.ErrSlotUnavailable, http.StatusConflict},
		{"daily limit exceeded", admission.ErrDailyLimitExceeded, http.StatusConflict},
		{"multiple labs per day", admission.ErrMultipleLabsPerDay, http.StatusConflict},
		{"outside operating hours", admission.ErrOutsideOperatingHours, http.StatusConflict},
		{"account not found", createReservation.ErrAccountNotFound, http.StatusNotFound},
		{"computer not found", createReservation.ErrComputerNotFound, http.StatusNotFound},
		{"role mismatch", createReservation.ErrRoleMismatch, http.StatusForbidden},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{
				executeFunc: func(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
					return nil, tt.err
				},
			}

			rec := doRequest(uc, validBody(), studentHeaders())

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_MissingIdentity(t *testing.T) {
	uc := &mockUseCase{
		executeFunc: func(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
			t.Fatal("use case must not be called without identity")
			return nil, nil
		},
	}

	rec := doRequest(uc, validBody(), nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_BadBody(t *testing.T) {
	uc := &mockUseCase{
		executeFunc: func(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
			t.Fatal("use case must not be called for a bad body")
			return nil, nil
		},
	}

	rec := doRequest(uc, []byte(`{"computerId": 0}`), studentHeaders())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
