package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "reservation/infras/otel/mocks"
	"reservation/internal/domains/booking/model/dto"
	"reservation/internal/domains/booking/service/mocks"
	cancellationDto "reservation/internal/domains/cancellation/model/dto"
	cancellationMocks "reservation/internal/domains/cancellation/service/mocks"
	"reservation/internal/handlers/booking"
	"reservation/shared/constant"
	"reservation/shared/failure"
	"reservation/shared/interval"
)

type fixture struct {
	router       chi.Router
	service      *mocks.MockBooking
	cancellation *cancellationMocks.MockCancellation
}

func newFixture(t *testing.T, userID string) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		service:      mocks.NewMockBooking(ctrl),
		cancellation: cancellationMocks.NewMockCancellation(ctrl),
	}

	handler := booking.New(f.service, f.cancellation, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				r = r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, userID))
			}

			next.ServeHTTP(w, r)
		})
	})
	router.Route("/v1", handler.Router)
	f.router = router

	return f
}

func serve(f fixture, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestCreateBooking(t *testing.T) {
	body := `{"room_id":"r1","check_in":"2025-07-10T14:00:00Z","check_out":"2025-07-12T12:00:00Z","provisional_total":"1500000"}`

	t.Run("admits", func(t *testing.T) {
		f := newFixture(t, "guest-1")
		f.service.EXPECT().Create(gomock.Any(), "guest-1", gomock.AssignableToTypeOf(dto.CreateBookingRequest{})).Return("b1", nil)

		rec := serve(f, http.MethodPost, "/v1/bookings/", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":{"id":"b1"}}`, rec.Body.String())
	})

	t.Run("conflict", func(t *testing.T) {
		f := newFixture(t, "guest-1")
		f.service.EXPECT().Create(gomock.Any(), "guest-1", gomock.Any()).Return("", failure.SlotConflict)

		rec := serve(f, http.MethodPost, "/v1/bookings/", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("requires a user", func(t *testing.T) {
		f := newFixture(t, "")

		rec := serve(f, http.MethodPost, "/v1/bookings/", body)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		f := newFixture(t, "guest-1")

		rec := serve(f, http.MethodPost, "/v1/bookings/", `{"room_id":"r1","nights":2}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCheckAvailability(t *testing.T) {
	start := time.Date(2025, 7, 10, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 12, 12, 0, 0, 0, time.UTC)

	t.Run("reports availability", func(t *testing.T) {
		f := newFixture(t, "")
		f.service.EXPECT().CheckAvailability(gomock.Any(), "r1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, period interval.Interval) (bool, error) {
				assert.True(t, period.Start.Equal(start))
				assert.True(t, period.End.Equal(end))

				return true, nil
			})

		rec := serve(f, http.MethodGet, "/v1/rooms/r1/availability?check_in=2025-07-10T14:00:00Z&check_out=2025-07-12T12:00:00Z", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"available":true`)
	})

	t.Run("inverted interval", func(t *testing.T) {
		f := newFixture(t, "")

		rec := serve(f, http.MethodGet, "/v1/rooms/r1/availability?check_in=2025-07-12T12:00:00Z&check_out=2025-07-10T14:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unparseable time", func(t *testing.T) {
		f := newFixture(t, "")

		rec := serve(f, http.MethodGet, "/v1/rooms/r1/availability?check_in=tomorrow&check_out=2025-07-10T14:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(t, "guest-1")
	f.cancellation.EXPECT().Cancel(gomock.Any(), "b1", "plans changed", "guest-1").
		Return(cancellationDto.CancellationResponse{ID: "c1", BookingID: "b1"}, nil)

	rec := serve(f, http.MethodPost, "/v1/bookings/b1/cancellation", `{"reason":"plans changed"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"c1"`)

	f.cancellation.EXPECT().Cancel(gomock.Any(), "b1", "", "guest-1").Return(cancellationDto.CancellationResponse{}, failure.AlreadyCancelled)

	rec = serve(f, http.MethodPost, "/v1/bookings/b1/cancellation", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}
