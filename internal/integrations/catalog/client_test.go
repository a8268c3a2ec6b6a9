package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/venuebook/pkg/logger"
	"github.com/m04kA/venuebook/pkg/types"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/courts/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"venueId":3,"name":"Court 1","sport":"badminton","pricePerHour":250,"currency":"thb",
			"priceOverrides":[{"startTime":"18:00","endTime":"22:00","pricePerHour":"350.50"},{"startTime":"20:00","endTime":"19:00","pricePerHour":1}]}`))
	})
	mux.HandleFunc("/internal/venues/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"ownerId":11,"name":"Arena","openTime":"09:00","closeTime":"22:00","timezone":"Asia/Bangkok",
			"calendar":[{"date":"2026-10-20","closed":false,"openTime":"10:00"},{"date":"2026-10-21","closed":true}]}`))
	})
	mux.HandleFunc("/internal/venues/4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":4,"openTime":"12:00","closeTime":"09:00"}`))
	})
	mux.HandleFunc("/internal/courts/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/internal/courts/8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetCourt(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL+"/", time.Second, logger.NewNop())

	court, err := client.GetCourt(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), court.VenueID)
	assert.Equal(t, types.Money(25000), court.PricePerHour)
	require.Len(t, court.PriceBands, 1, "invalid band is dropped")
	assert.Equal(t, types.Money(35050), court.PriceBands[0].PricePerHour)
	assert.Equal(t, "18:00-22:00", court.PriceBands[0].Interval.String())
}

func TestClient_GetVenue(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	venue, err := client.GetVenue(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), venue.ID)
	assert.Equal(t, int64(11), venue.OwnerID)
	assert.Equal(t, "Asia/Bangkok", venue.Timezone)

	hours, open := venue.HoursOn(types.MustParseDate("2026-10-20"))
	require.True(t, open)
	assert.Equal(t, "10:00-22:00", hours.String())

	_, open = venue.HoursOn(types.MustParseDate("2026-10-21"))
	assert.False(t, open)
}

func TestClient_Errors(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	_, err := client.GetCourt(ctx, 404)
	assert.ErrorIs(t, err, ErrCourtNotFound)

	_, err = client.GetVenue(ctx, 404)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = client.GetCourt(ctx, 500)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = client.GetCourt(ctx, 8)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetVenue(ctx, 4)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unavailable(t *testing.T) {
	srv := newCatalogServer(t)
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, logger.NewNop())
	_, err := client.GetCourt(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}
