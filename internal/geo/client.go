package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"supportdir/internal/directory/models"
	"supportdir/internal/platform/config"
	"supportdir/pkg/derrors"
)

// Client resolves postcodes against a postcodes.io-compatible lookup service.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// NewClient constructs a lookup client with an explicit timeout so a slow
// upstream cannot stall a scan worker.
func NewClient(cfg config.Geocode) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		tracer:  otel.Tracer("supportdir/geo"),
	}
}

type lookupResponse struct {
	Status int `json:"status"`
	Result struct {
		Postcode  string  `json:"postcode"`
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	} `json:"result"`
}

// Resolve looks up one postcode. 404 from the service is the terminal
// not-found outcome; everything else non-2xx is transient.
func (c *Client) Resolve(ctx context.Context, postcode string) (*models.Coordinates, error) {
	const op = "geo.resolve"

	normalized := NormalizePostcode(postcode)
	if normalized == "" {
		return nil, errNotFound(op, postcode)
	}

	ctx, span := c.tracer.Start(ctx, "geo.lookup",
		trace.WithAttributes(attribute.String("postcode", normalized)))
	defer span.End()

	endpoint := fmt.Sprintf("%s/postcodes/%s", c.baseURL, url.PathEscape(normalized))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, derrors.New(derrors.CategoryInternal, op, "build lookup request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, derrors.New(derrors.CategoryTransient, op, "postcode lookup failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound(op, normalized)
	case resp.StatusCode != http.StatusOK:
		return nil, derrors.New(derrors.CategoryTransient, op,
			fmt.Sprintf("postcode lookup returned status %d", resp.StatusCode), nil)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, derrors.New(derrors.CategoryTransient, op, "decode lookup response", err)
	}

	return &models.Coordinates{
		Longitude: body.Result.Longitude,
		Latitude:  body.Result.Latitude,
	}, nil
}
