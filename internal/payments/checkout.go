package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/trektide/trektide/internal/models"
)

// Checkout is a hosted payment session for one tour booking.
type Checkout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Client wraps checkout-preference creation. Nil-safe: without an access
// token the client is nil and checkout endpoints report unavailability.
type Client struct {
	prefs preference.Client
}

func NewClient(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("payment config: %w", err)
	}

	return &Client{prefs: preference.NewClient(cfg)}, nil
}

// CreateCheckout opens a payment session for the tour. The success URL
// carries the booking parameters back so the booking can be recorded on
// return.
func (c *Client) CreateCheckout(ctx context.Context, tour *models.Tour, user *models.User, baseURL string) (*Checkout, error) {
	successURL := fmt.Sprintf(
		"%s/my-tours?tour=%d&user=%d&price=%.2f",
		baseURL, tour.ID, user.ID, tour.Price,
	)

	req := preference.Request{
		ExternalReference: fmt.Sprintf("tour-%d-user-%d", tour.ID, user.ID),
		Items: []preference.ItemRequest{
			{
				ID:          fmt.Sprintf("%d", tour.ID),
				Title:       fmt.Sprintf("%s Tour", tour.Name),
				Description: tour.Summary,
				PictureURL:  tour.ImageCover,
				Quantity:    1,
				UnitPrice:   tour.Price,
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: successURL,
			Failure: fmt.Sprintf("%s/tour/%s", baseURL, tour.Slug),
		},
	}

	resp, err := c.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create checkout preference: %w", err)
	}

	return &Checkout{ID: resp.ID, URL: resp.InitPoint}, nil
}
