package phoenixd

import (
	"context"
	"net/http"
	"net/url"
)

// PayBolt11Invoice pays invoice. With a nil amountSats the node pays the
// amount encoded in the invoice.
//
// ErrPaymentExecutionFailed covers both a rejected payment and a success
// body that could not be decoded; check GetOutgoingInvoice before
// retrying.
func (c *Client) PayBolt11Invoice(ctx context.Context, invoice string, amountSats *uint64) (*PayInvoiceResponse, error) {
	return c.pay(ctx, "payinvoice", PayInvoiceRequest{
		AmountSats: amountSats,
		Invoice:    invoice,
	})
}

// PayBolt12Offer pays a bolt12 offer, attaching message for the payee.
func (c *Client) PayBolt12Offer(ctx context.Context, offer string, amountSats *uint64, message string) (*PayInvoiceResponse, error) {
	return c.pay(ctx, "payoffer", PayBolt12Request{
		AmountSats: amountSats,
		Offer:      offer,
		Message:    message,
	})
}

func (c *Client) pay(ctx context.Context, path string, request any) (*PayInvoiceResponse, error) {
	res, err := c.Post(ctx, path, request)
	if err != nil {
		return nil, err
	}
	var payment PayInvoiceResponse
	if err := c.decode("pay "+path, ErrPaymentExecutionFailed, res, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetOutgoingInvoice looks up an outgoing payment by its payment hash.
// A 404 from the node returns ErrNotFound.
func (c *Client) GetOutgoingInvoice(ctx context.Context, paymentHash string) (*GetOutgoingInvoiceResponse, error) {
	res, err := c.Get(ctx, "payments/outgoing/"+url.PathEscape(paymentHash))
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusNotFound {
		return nil, failure("get outgoing invoice", ErrNotFound, res, nil)
	}
	var payment GetOutgoingInvoiceResponse
	if err := c.decode("get outgoing invoice", ErrPaymentLookupFailed, res, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
