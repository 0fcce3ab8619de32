package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	models "github.com/chrisdamba/schedulo/internal"
)

type ApiError struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"message,omitempty"`
}

func (o *ApiError) Error() string {
	return fmt.Sprintf("%d: %s", o.StatusCode, o.Msg)
}

func NewInternalServerError(msg string) ApiError {
	return ApiError{http.StatusInternalServerError, msg}
}

func NewBadRequest(msg string) ApiError {
	return ApiError{http.StatusBadRequest, msg}
}

func NewNotFound(msg string) ApiError {
	return ApiError{http.StatusNotFound, msg}
}

// MaxBodyBytes caps request bodies read by JsonDecodeBody.
const MaxBodyBytes = 1 << 20

func JsonDecodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// NewDecodeError maps a JsonDecodeBody failure onto a response.
func NewDecodeError(err error) ApiError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ApiError{http.StatusRequestEntityTooLarge, "request body too large"}
	}
	return NewBadRequest("error json decoding body")
}

// RenderFailure writes the store envelope with success=false.
func RenderFailure(w http.ResponseWriter, ae ApiError) {
	RenderResponse(w, ae.StatusCode, models.Result{Success: false, Message: ae.Msg})
}

func RenderSuccess(w http.ResponseWriter, statusCode int, booking *models.Booking) {
	RenderResponse(w, statusCode, models.Result{Success: true, Booking: booking})
}

func RenderResponse(w http.ResponseWriter, statusCode int, res interface{}) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	if res != nil {
		var err error
		body, err = json.Marshal(res)
		if err != nil {
			statusCode = http.StatusInternalServerError
			body, err = json.Marshal(models.Result{Message: err.Error()})
			if err != nil {
				body = []byte(`{"success": false}`)
			}
		}
	}
	w.WriteHeader(statusCode)
	if len(body) > 0 {
		w.Write(body)
	}
}

// AllowedContentTypes rejects requests carrying a body in a media type not listed.
func AllowedContentTypes(next http.HandlerFunc, mediaTypes ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err == nil && existsInSlice(mediaTypes, mt) {
			next(w, r)
			return
		}
		RenderFailure(w, ApiError{http.StatusUnsupportedMediaType, "unsupported content type"})
	}
}

func existsInSlice(list []string, needle string) bool {
	for i := range list {
		if list[i] == needle {
			return true
		}
	}
	return false
}
