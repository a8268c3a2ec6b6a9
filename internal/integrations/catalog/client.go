package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/venuebook/internal/domain"
)

// Client клиент каталога площадок и кортов
// Ответы не кэшируются: рабочие часы должны читаться актуальными
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCourt получает корт по ID
func (c *Client) GetCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	url := fmt.Sprintf("%s/internal/courts/%d", c.baseURL, courtID)

	var court Court
	if err := c.get(ctx, url, ErrCourtNotFound, &court); err != nil {
		return nil, err
	}
	if court.VenueID == 0 {
		return nil, fmt.Errorf("%w: court %d has no venue", ErrInvalidResponse, courtID)
	}

	return court.ToDomain(), nil
}

// GetVenue получает площадку по ID
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	url := fmt.Sprintf("%s/internal/venues/%d", c.baseURL, venueID)

	var venue Venue
	if err := c.get(ctx, url, ErrVenueNotFound, &venue); err != nil {
		return nil, err
	}
	if !venue.OpenTime.IsBefore(venue.CloseTime) {
		return nil, fmt.Errorf("%w: venue %d open %s is not before close %s",
			ErrInvalidResponse, venueID, venue.OpenTime, venue.CloseTime)
	}

	return venue.ToDomain(), nil
}

func (c *Client) get(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Catalog request failed url=%s: %v", url, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: bad request for %s", ErrInvalidResponse, url)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("Catalog unexpected status=%d url=%s", resp.StatusCode, url)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInternal, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
