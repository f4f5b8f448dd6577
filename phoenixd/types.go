package phoenixd

import "time"

// ContractVersion names the wire contract this package speaks: JSON
// request bodies and the payments/incoming lookup path.
const ContractVersion = "v1-json"

// InvoiceState is the state tag some node responses carry. The node owns
// the transitions; this package only decodes the tag.
type InvoiceState string

const (
	InvoiceStateCompleted InvoiceState = "COMPLETED"
	InvoiceStatePaid      InvoiceState = "PAID"
	InvoiceStateUnpaid    InvoiceState = "UNPAID"
	InvoiceStatePending   InvoiceState = "PENDING"
)

// Known reports whether s is one of the states this package names. Other
// tags are still decoded and passed through unchanged.
func (s InvoiceState) Known() bool {
	switch s {
	case InvoiceStateCompleted, InvoiceStatePaid, InvoiceStateUnpaid, InvoiceStatePending:
		return true
	}
	return false
}

// InvoiceRequest is the body of a create invoice call. Description and
// DescriptionHash are passed through as given.
type InvoiceRequest struct {
	ExternalID      *string `json:"externalId,omitempty"`      // correlation id
	Description     *string `json:"description,omitempty"`     // invoice description
	DescriptionHash *string `json:"descriptionHash,omitempty"` // hash of the description
	AmountSat       uint64  `json:"amountSat"`                 // invoice amount in sats
	WebhookURL      *string `json:"webhookUrl,omitempty"`      // overrides the node's webhook for this invoice
}

type InvoiceResponse struct {
	AmountSat   uint64 `json:"amountSat"`
	PaymentHash string `json:"paymentHash"`
	Serialized  string `json:"serialized"` // bolt11
}

func (r *InvoiceResponse) UnmarshalJSON(data []byte) error {
	type alias InvoiceResponse
	return strictUnmarshal(data, (*alias)(r))
}

// FindInvoiceResponse is an incoming payment as the node reports it.
// CompletedAt is nil until the invoice is paid.
type FindInvoiceResponse struct {
	PaymentHash string  `json:"paymentHash"`
	Preimage    string  `json:"preimage"`
	ExternalID  *string `json:"externalId,omitempty"`
	Description string  `json:"description"`
	Invoice     string  `json:"invoice"`
	IsPaid      bool    `json:"isPaid"`
	ReceivedSat uint64  `json:"receivedSat"`
	Fees        uint64  `json:"fees"`
	CompletedAt *uint64 `json:"completedAt,omitempty"` // unix millis
	CreatedAt   uint64  `json:"createdAt"`             // unix millis
}

func (r *FindInvoiceResponse) UnmarshalJSON(data []byte) error {
	type alias FindInvoiceResponse
	return strictUnmarshal(data, (*alias)(r))
}

// Settled reports whether the invoice reached its terminal state.
func (r *FindInvoiceResponse) Settled() bool {
	return r.IsPaid && r.CompletedAt != nil
}

func (r *FindInvoiceResponse) CompletedTime() (time.Time, bool) {
	return millis(r.CompletedAt)
}

func (r *FindInvoiceResponse) CreatedTime() time.Time {
	return time.UnixMilli(int64(r.CreatedAt))
}

// PayInvoiceRequest pays a bolt11 invoice. A nil AmountSats lets the node
// pay the amount encoded in the invoice.
type PayInvoiceRequest struct {
	AmountSats *uint64 `json:"amountSats,omitempty"`
	Invoice    string  `json:"invoice"`
}

// PayBolt12Request pays a bolt12 offer.
type PayBolt12Request struct {
	AmountSats *uint64 `json:"amountSats,omitempty"`
	Offer      string  `json:"offer"`
	Message    string  `json:"message"`
}

// PayInvoiceResponse is only returned for a successful payment.
type PayInvoiceResponse struct {
	RecipientAmountSat uint64 `json:"recipientAmountSat"`
	RoutingFeeSat      uint64 `json:"routingFeeSat"`
	PaymentID          string `json:"paymentId"`
	PaymentHash        string `json:"paymentHash"`
	PaymentPreimage    string `json:"paymentPreimage"`
}

func (r *PayInvoiceResponse) UnmarshalJSON(data []byte) error {
	type alias PayInvoiceResponse
	return strictUnmarshal(data, (*alias)(r))
}

// GetOutgoingInvoiceResponse is an outgoing payment as the node reports it.
type GetOutgoingInvoiceResponse struct {
	PaymentHash string  `json:"paymentHash"`
	Preimage    string  `json:"preimage"`
	IsPaid      bool    `json:"isPaid"`
	Sent        uint64  `json:"sent"`
	Fees        uint64  `json:"fees"`
	Invoice     string  `json:"invoice"`
	CompletedAt *uint64 `json:"completedAt,omitempty"`
	CreatedAt   uint64  `json:"createdAt"`
}

func (r *GetOutgoingInvoiceResponse) UnmarshalJSON(data []byte) error {
	type alias GetOutgoingInvoiceResponse
	return strictUnmarshal(data, (*alias)(r))
}

func (r *GetOutgoingInvoiceResponse) Settled() bool {
	return r.IsPaid && r.CompletedAt != nil
}

func (r *GetOutgoingInvoiceResponse) CompletedTime() (time.Time, bool) {
	return millis(r.CompletedAt)
}

func (r *GetOutgoingInvoiceResponse) CreatedTime() time.Time {
	return time.UnixMilli(int64(r.CreatedAt))
}

// WebhookResponse is the body the node posts to the webhook endpoint.
type WebhookResponse struct {
	Type        string  `json:"type"`
	AmountSat   uint64  `json:"amountSat"`
	PaymentHash string  `json:"paymentHash"`
	ExternalID  *string `json:"externalId,omitempty"` // set if one was given at invoice creation
}

func (r *WebhookResponse) UnmarshalJSON(data []byte) error {
	type alias WebhookResponse
	return strictUnmarshal(data, (*alias)(r))
}

type Channel struct {
	State               string `json:"state"`
	ChannelID           string `json:"channelId"`
	BalanceSat          uint64 `json:"balanceSat"`
	InboundLiquiditySat uint64 `json:"inboundLiquiditySat"`
	CapacitySat         uint64 `json:"capacitySat"`
	FundingTxID         string `json:"fundingTxId"`
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	type alias Channel
	return strictUnmarshal(data, (*alias)(c))
}

type NodeInfo struct {
	NodeID   string    `json:"nodeId"`
	Channels []Channel `json:"channels"`
}

func (n *NodeInfo) UnmarshalJSON(data []byte) error {
	type alias NodeInfo
	return strictUnmarshal(data, (*alias)(n))
}

func millis(ts *uint64) (time.Time, bool) {
	if ts == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(*ts)), true
}
