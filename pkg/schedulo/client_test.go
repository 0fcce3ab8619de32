package schedulo_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/chrisdamba/schedulo/pkg/schedulo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	doFunc func(*http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newTestClient(doFunc func(*http.Request) (*http.Response, error)) *schedulo.Client {
	return schedulo.NewClient(
		schedulo.WithHTTPClient(&mockHTTPClient{doFunc: doFunc}),
		schedulo.WithBaseURL("https://store.test/"),
	)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func strPtr(s string) *string { return &s }

func TestClient_List(t *testing.T) {
	tests := []struct {
		name          string
		setupResponse func(*http.Request) (*http.Response, error)
		want          []models.Booking
		wantTransport bool
		wantApp       bool
	}{
		{
			name: "decodes collection in store order",
			setupResponse: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[
					{"_id":"b1","name":"Ann","phone":"1","service":"Deep Clean","date":"2025-03-01","time":"09:00","status":"Confirmed"},
					{"id":"b2","name":"Bob","phone":"2","service":"Dog walk","date":"2025-03-02","time":"10:30","notes":"gate code 12"}
				]`), nil
			},
			want: []models.Booking{
				{ID: "b1", Name: "Ann", Phone: "1", Service: "Deep Clean", Date: "2025-03-01", Time: "09:00", Status: models.StatusConfirmed},
				{ID: "b2", Name: "Bob", Phone: "2", Service: "Dog walk", Date: "2025-03-02", Time: "10:30", Notes: "gate code 12", Status: models.StatusPending},
			},
		},
		{
			name: "empty collection",
			setupResponse: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[]`), nil
			},
			want: []models.Booking{},
		},
		{
			name: "connection refused",
			setupResponse: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
			wantTransport: true,
		},
		{
			name: "unexpected payload shape",
			setupResponse: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"bookings":[]}`), nil
			},
			wantApp: true,
		},
		{
			name: "server error",
			setupResponse: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `{"success":false,"message":"db down"}`), nil
			},
			wantApp: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(tt.setupResponse)
			got, err := client.List(context.Background())

			switch {
			case tt.wantTransport:
				require.Error(t, err)
				assert.ErrorIs(t, err, schedulo.ErrTransport)
				assert.NotErrorIs(t, err, schedulo.ErrApplication)
				return
			case tt.wantApp:
				require.Error(t, err)
				assert.ErrorIs(t, err, schedulo.ErrApplication)
				assert.NotErrorIs(t, err, schedulo.ErrTransport)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Create(t *testing.T) {
	fields := models.Fields{
		Name:    strPtr("Ann"),
		Phone:   strPtr("07700 900000"),
		Service: strPtr("Window Cleaning"),
		Date:    strPtr("2025-05-01"),
		Time:    strPtr("14:15"),
	}

	t.Run("posts fields without id and returns echoed booking", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://store.test/book", req.URL.String())
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

			var sent map[string]interface{}
			require.NoError(t, json.NewDecoder(req.Body).Decode(&sent))
			assert.NotContains(t, sent, "_id")
			assert.NotContains(t, sent, "id")
			assert.NotContains(t, sent, "notes")
			assert.Equal(t, "Window Cleaning", sent["service"])

			return jsonResponse(http.StatusCreated, `{"success":true,"booking":{"_id":"new-1","name":"Ann","phone":"07700 900000","service":"Window Cleaning","date":"2025-05-01","time":"14:15"}}`), nil
		})

		booking, err := client.Create(context.Background(), fields)
		require.NoError(t, err)
		assert.Equal(t, "new-1", booking.ID)
		assert.Equal(t, models.StatusPending, booking.Status)
	})

	t.Run("success without echo falls back to submitted fields", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"success":true}`), nil
		})

		booking, err := client.Create(context.Background(), fields)
		require.NoError(t, err)
		assert.Empty(t, booking.ID)
		assert.Equal(t, "Ann", booking.Name)
	})

	t.Run("success flag false is an application failure", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"success":false,"message":"duplicate"}`), nil
		})

		_, err := client.Create(context.Background(), fields)
		require.Error(t, err)
		assert.ErrorIs(t, err, schedulo.ErrApplication)
		var appErr *schedulo.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "duplicate", appErr.Msg)
	})

	t.Run("dropped connection is a transport failure", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			return nil, io.ErrUnexpectedEOF
		})

		_, err := client.Create(context.Background(), fields)
		require.Error(t, err)
		assert.ErrorIs(t, err, schedulo.ErrTransport)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("non json body is an application failure", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, `<html>bad gateway</html>`), nil
		})

		_, err := client.Create(context.Background(), fields)
		assert.ErrorIs(t, err, schedulo.ErrApplication)
	})
}

func TestClient_UpdateAndDelete(t *testing.T) {
	t.Run("status toggle sends a single field", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "/bookings/abc", req.URL.Path)
			body, _ := io.ReadAll(req.Body)
			assert.JSONEq(t, `{"status":"Confirmed"}`, string(body))
			return jsonResponse(http.StatusOK, `{"success":true}`), nil
		})

		status := models.StatusConfirmed
		err := client.Update(context.Background(), "abc", models.Fields{Status: &status})
		assert.NoError(t, err)
	})

	t.Run("delete sends no body", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.Equal(t, "/bookings/abc", req.URL.Path)
			assert.Nil(t, req.Body)
			return jsonResponse(http.StatusOK, `{"success":true}`), nil
		})

		assert.NoError(t, client.Delete(context.Background(), "abc"))
	})

	t.Run("delete of unknown id", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusNotFound, `{"success":false,"message":"booking not found"}`), nil
		})

		err := client.Delete(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, schedulo.ErrApplication)
		var appErr *schedulo.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	})

	t.Run("server error with success flag", func(t *testing.T) {
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusInternalServerError, `{"success":true}`), nil
		})

		err := client.Delete(context.Background(), "abc")
		require.Error(t, err)
		assert.ErrorIs(t, err, schedulo.ErrApplication)
		assert.NotErrorIs(t, err, schedulo.ErrTransport)
		var appErr *schedulo.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	})

	t.Run("empty id is rejected before sending", func(t *testing.T) {
		calls := 0
		client := newTestClient(func(req *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, `{"success":true}`), nil
		})

		assert.ErrorIs(t, client.Delete(context.Background(), ""), models.ErrInvalidID)
		assert.ErrorIs(t, client.Update(context.Background(), "", models.Fields{}), models.ErrInvalidID)
		assert.Zero(t, calls)
	})
}

func TestClient_AgainstClosedServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := schedulo.NewClient(schedulo.WithBaseURL(url))
	_, err := client.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, schedulo.ErrTransport)
}
