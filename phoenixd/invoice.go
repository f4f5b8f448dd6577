package phoenixd

import (
	"context"
	"net/url"
)

// CreateInvoice creates a bolt11 invoice on the node. If the request has
// no webhook url and the client was built with one, the client's url is
// sent.
func (c *Client) CreateInvoice(ctx context.Context, request InvoiceRequest) (*InvoiceResponse, error) {
	if request.WebhookURL == nil && c.webhookURL != nil {
		u := c.webhookURL.String()
		request.WebhookURL = &u
	}
	res, err := c.Post(ctx, "createinvoice", request)
	if err != nil {
		return nil, err
	}
	var invoice InvoiceResponse
	if err := c.decode("create invoice", ErrInvoiceCreationFailed, res, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindInvoice looks up an incoming payment by its payment hash.
func (c *Client) FindInvoice(ctx context.Context, paymentHash string) (*FindInvoiceResponse, error) {
	res, err := c.Get(ctx, "payments/incoming/"+url.PathEscape(paymentHash))
	if err != nil {
		return nil, err
	}
	var invoice FindInvoiceResponse
	if err := c.decode("find invoice", ErrInvoiceLookupFailed, res, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}
