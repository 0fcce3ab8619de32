package api

import (
	"errors"
	"log/slog"
	"net/http"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/chrisdamba/schedulo/internal/ports"
	"github.com/chrisdamba/schedulo/internal/service"
	"github.com/chrisdamba/schedulo/internal/utils"
)

// Register mounts the booking collection routes on mux.
func Register(mux *http.ServeMux, svc ports.BookingService, log *slog.Logger) {
	mux.HandleFunc("GET /bookings", list(svc, log))
	mux.HandleFunc("POST /book", utils.AllowedContentTypes(create(svc, log), "application/json"))
	mux.HandleFunc("PUT /bookings/{id}", utils.AllowedContentTypes(update(svc, log), "application/json"))
	mux.HandleFunc("DELETE /bookings/{id}", remove(svc, log))
}

func list(svc ports.BookingService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := svc.AllBookings(r.Context())
		if err != nil {
			log.Error("listing bookings", "err", err)
			utils.RenderFailure(w, utils.NewInternalServerError("could not list bookings"))
			return
		}
		utils.RenderResponse(w, http.StatusOK, bookings)
	}
}

func create(svc ports.BookingService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BookingRequest
		if err := utils.JsonDecodeBody(w, r, &req); err != nil {
			utils.RenderFailure(w, utils.NewDecodeError(err))
			return
		}

		booking, err := svc.CreateBooking(r.Context(), &req)
		if err != nil {
			ae := getApiError(err)
			if ae.StatusCode >= http.StatusInternalServerError {
				log.Error("creating booking", "err", err)
			}
			utils.RenderFailure(w, ae)
			return
		}
		log.Info("booking created", "id", booking.ID)
		utils.RenderSuccess(w, http.StatusCreated, booking)
	}
}

func update(svc ports.BookingService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var fields models.Fields
		if err := utils.JsonDecodeBody(w, r, &fields); err != nil {
			utils.RenderFailure(w, utils.NewDecodeError(err))
			return
		}

		if err := svc.UpdateBooking(r.Context(), id, fields); err != nil {
			ae := getApiError(err)
			if ae.StatusCode >= http.StatusInternalServerError {
				log.Error("updating booking", "id", id, "err", err)
			}
			utils.RenderFailure(w, ae)
			return
		}
		log.Info("booking updated", "id", id)
		utils.RenderSuccess(w, http.StatusOK, nil)
	}
}

func remove(svc ports.BookingService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := svc.DeleteBooking(r.Context(), id); err != nil {
			ae := getApiError(err)
			if ae.StatusCode >= http.StatusInternalServerError {
				log.Error("deleting booking", "id", id, "err", err)
			}
			utils.RenderFailure(w, ae)
			return
		}
		log.Info("booking deleted", "id", id)
		utils.RenderSuccess(w, http.StatusOK, nil)
	}
}

func getApiError(err error) utils.ApiError {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return utils.NewBadRequest(ve.Error())
	case errors.Is(err, models.ErrInvalidID):
		return utils.NewBadRequest(err.Error())
	case errors.Is(err, models.ErrBookingNotFound):
		return utils.NewNotFound(err.Error())
	default:
		return utils.NewInternalServerError("internal error")
	}
}
