// Package webhook receives payment notifications pushed by a phoenixd
// node and relays them to the application through a Queue.
//
// The route is not authenticated. Expose it only on trusted networks.
package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/thesimplekid/phoenixd-go/internal/api"
	"github.com/thesimplekid/phoenixd-go/phoenixd"
)

const maxBodySize = 64 << 10

type Option func(*handler)

func WithLogger(l log.FieldLogger) Option {
	return func(h *handler) {
		if l != nil {
			h.log = l
		}
	}
}

type handler struct {
	queue *Queue
	log   log.FieldLogger
}

// NewRouter returns a router with a single POST route at endpoint.
func NewRouter(endpoint string, queue *Queue, opts ...Option) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc(endpoint, api.LoggingMiddleware("webhook", Handler(queue, opts...).ServeHTTP)).
		Methods(http.MethodPost)
	return router
}

// Handler decodes a webhook body and offers it to queue. The node always
// gets 200 for a well formed body, even when the queue drops the event.
func Handler(queue *Queue, opts ...Option) http.Handler {
	h := &handler{queue: queue, log: log.StandardLogger()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, err := io.ReadAll(io.LimitReader(request.Body, maxBodySize))
	if err != nil {
		h.log.Warnf("[webhook] could not read payload: %v", err)
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	var event phoenixd.WebhookResponse
	if err := json.Unmarshal(body, &event); err != nil {
		h.log.Warnf("[webhook] got an invalid payload: %v", err)
		writer.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	h.log.Debugf("[webhook] received update for: %s", event.PaymentHash)

	if err := h.queue.Offer(event); err != nil {
		h.log.Warnf("[webhook] dropped update for %s (%d/%d): %v", event.PaymentHash, h.queue.Len(), h.queue.Cap(), err)
	}
	writer.WriteHeader(http.StatusOK)
}
