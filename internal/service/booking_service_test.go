package service_test

import (
	"context"
	"testing"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/chrisdamba/schedulo/internal/mocks"
	"github.com/chrisdamba/schedulo/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRequest() *models.BookingRequest {
	return &models.BookingRequest{
		Name:    "John",
		Phone:   "07700 900000",
		Service: "Deep Clean",
		Date:    "2025-04-01",
		Time:    "09:30",
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("Successful booking creation", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateBooking", ctx, mock.MatchedBy(func(b *models.Booking) bool {
			return b.ID == "" && b.Name == "John" && b.Status == models.StatusPending
		})).Return(&models.Booking{ID: "new", Name: "John", Status: models.StatusPending}, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, "new", booking.ID)
		mockRepo.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{name: "Missing name", mutate: func(r *models.BookingRequest) { r.Name = "" }},
		{name: "Missing phone", mutate: func(r *models.BookingRequest) { r.Phone = "" }},
		{name: "Missing service", mutate: func(r *models.BookingRequest) { r.Service = "" }},
		{name: "Bad date", mutate: func(r *models.BookingRequest) { r.Date = "01/04/2025" }},
		{name: "Bad time", mutate: func(r *models.BookingRequest) { r.Time = "9:30" }},
		{name: "Unknown status", mutate: func(r *models.BookingRequest) { r.Status = "Cancelled" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockBookingRepository)
			svc := service.NewBookingService(mockRepo)
			req := validRequest()
			tt.mutate(req)

			booking, err := svc.CreateBooking(context.Background(), req)

			assert.Nil(t, booking)
			var ve *service.ValidationError
			assert.ErrorAs(t, err, &ve)
			mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
		})
	}

	t.Run("Database error during creation", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateBooking", ctx, mock.Anything).Return(nil, assert.AnError)

		booking, err := svc.CreateBooking(ctx, validRequest())

		assert.Nil(t, booking)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "error creating booking")
	})
}

func TestUpdateBooking(t *testing.T) {
	id := uuid.NewString()

	t.Run("Partial update", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)
		ctx := context.Background()

		status := models.StatusConfirmed
		fields := models.Fields{Status: &status}
		mockRepo.On("UpdateBooking", ctx, id, fields).Return(nil)

		require.NoError(t, svc.UpdateBooking(ctx, id, fields))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid id", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)

		status := models.StatusConfirmed
		err := svc.UpdateBooking(context.Background(), "not-a-uuid", models.Fields{Status: &status})
		assert.ErrorIs(t, err, models.ErrInvalidID)
	})

	t.Run("Empty update", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)

		err := svc.UpdateBooking(context.Background(), id, models.Fields{})
		assert.ErrorIs(t, err, models.ErrEmptyUpdate)
	})

	t.Run("Blank name is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)

		name := ""
		err := svc.UpdateBooking(context.Background(), id, models.Fields{Name: &name})
		var ve *service.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)
		ctx := context.Background()

		notes := "x"
		mockRepo.On("UpdateBooking", ctx, id, mock.Anything).Return(models.ErrBookingNotFound)

		err := svc.UpdateBooking(ctx, id, models.Fields{Notes: &notes})
		assert.ErrorIs(t, err, models.ErrBookingNotFound)
	})
}

func TestDeleteBooking(t *testing.T) {
	id := uuid.NewString()

	t.Run("Successful deletion", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)
		ctx := context.Background()

		mockRepo.On("DeleteBooking", ctx, id).Return(nil)

		assert.NoError(t, svc.DeleteBooking(ctx, id))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid UUID", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)

		assert.ErrorIs(t, svc.DeleteBooking(context.Background(), "invalid-uuid"), models.ErrInvalidID)
		mockRepo.AssertNotCalled(t, "DeleteBooking", mock.Anything, mock.Anything)
	})

	t.Run("Database error", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo)
		ctx := context.Background()

		mockRepo.On("DeleteBooking", ctx, id).Return(assert.AnError)

		err := svc.DeleteBooking(ctx, id)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "error deleting booking")
	})
}

func TestAllBookings(t *testing.T) {
	mockRepo := new(mocks.MockBookingRepository)
	svc := service.NewBookingService(mockRepo)
	ctx := context.Background()

	mockRepo.On("ListBookings", ctx).Return([]models.Booking{{ID: "a"}, {ID: "b"}}, nil).Once()
	mockRepo.On("ListBookings", ctx).Return(nil, assert.AnError).Once()

	bookings, err := svc.AllBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	_, err = svc.AllBookings(ctx)
	assert.ErrorIs(t, err, assert.AnError)
}
