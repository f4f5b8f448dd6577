package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"github.com/thesimplekid/phoenixd-go/internal"
	"github.com/thesimplekid/phoenixd-go/internal/api"
	"github.com/thesimplekid/phoenixd-go/internal/network"
	"github.com/thesimplekid/phoenixd-go/phoenixd"
	"github.com/thesimplekid/phoenixd-go/phoenixd/webhook"
)

const usage = `usage: phoenixd [-config file] <command> [flags] [args]

commands:
  createinvoice -amount N [-description s | -description-hash h] [-external-id id] [-webhook-url u] [-qr]
  findinvoice HASH
  payinvoice [-amount N] INVOICE
  payoffer [-amount N] [-message s] OFFER
  getoutgoing HASH
  getinfo
  listen
`

// setLogger will initialize the log format
func setLogger(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
}

func main() {
	defer withRecovery()

	configFile := flag.String("config", "config.yaml", "path to the yaml configuration")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := internal.Load(*configFile)
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	setLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}

func newClient(cfg internal.Configuration) (*phoenixd.Client, error) {
	httpClient, err := network.GetClient(cfg.Network)
	if err != nil {
		return nil, err
	}
	opts := []phoenixd.Option{phoenixd.WithHTTPClient(httpClient)}
	if cfg.Phoenixd.WebhookUrl != "" {
		opts = append(opts, phoenixd.WithWebhookURL(cfg.Phoenixd.WebhookUrl))
	}
	return phoenixd.New(cfg.Phoenixd.Password, cfg.Phoenixd.Url, opts...)
}

func run(ctx context.Context, cfg internal.Configuration, command string, args []string) error {
	if command == "listen" {
		return listen(ctx, cfg)
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	switch command {
	case "createinvoice":
		return createInvoice(ctx, client, args)
	case "findinvoice":
		hash, err := single(command, args)
		if err != nil {
			return err
		}
		return printResult(client.FindInvoice(ctx, hash))
	case "payinvoice":
		return pay(ctx, client, args, false)
	case "payoffer":
		return pay(ctx, client, args, true)
	case "getoutgoing":
		hash, err := single(command, args)
		if err != nil {
			return err
		}
		return printResult(client.GetOutgoingInvoice(ctx, hash))
	case "getinfo":
		return printResult(client.GetInfo(ctx))
	}
	return fmt.Errorf("unknown command %q\n%s", command, usage)
}

func single(command string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s takes exactly one argument", command)
	}
	return args[0], nil
}

func createInvoice(ctx context.Context, client *phoenixd.Client, args []string) error {
	fs := flag.NewFlagSet("createinvoice", flag.ContinueOnError)
	amount := fs.String("amount", "", "amount in sats")
	description := fs.String("description", "", "invoice description")
	descriptionHash := fs.String("description-hash", "", "hash of the invoice description")
	externalID := fs.String("external-id", "", "correlation id, generated if empty")
	webhookURL := fs.String("webhook-url", "", "webhook url for this invoice")
	qr := fs.Bool("qr", false, "print the invoice as a qr code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *amount == "" {
		return fmt.Errorf("createinvoice: -amount is required")
	}
	amountSat, err := parseAmount("createinvoice", *amount)
	if err != nil {
		return err
	}
	if *externalID == "" {
		*externalID = uuid.NewString()
	}

	request := phoenixd.InvoiceRequest{
		ExternalID:      externalID,
		Description:     optional(*description),
		DescriptionHash: optional(*descriptionHash),
		AmountSat:       *amountSat,
		WebhookURL:      optional(*webhookURL),
	}
	invoice, err := client.CreateInvoice(ctx, request)
	if err != nil {
		return err
	}
	if *qr {
		code, err := qrcode.New(invoice.Serialized, qrcode.Medium)
		if err != nil {
			return err
		}
		printQR(code)
	}
	return printResult(invoice, nil)
}

func pay(ctx context.Context, client *phoenixd.Client, args []string, offer bool) error {
	name := "payinvoice"
	if offer {
		name = "payoffer"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	amount := fs.String("amount", "", "amount in sats, defaults to the invoice amount")
	message := fs.String("message", "", "message for the payee (offers only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	target, err := single(name, fs.Args())
	if err != nil {
		return err
	}
	var amountSats *uint64
	if *amount != "" {
		if amountSats, err = parseAmount(name, *amount); err != nil {
			return err
		}
	}
	if offer {
		return printResult(client.PayBolt12Offer(ctx, target, amountSats, *message))
	}
	return printResult(client.PayBolt11Invoice(ctx, target, amountSats))
}

// parseAmount parses a sat amount flag. Zero is a valid amount.
func parseAmount(command, raw string) (*uint64, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid amount %q", command, raw)
	}
	return &v, nil
}

func listen(ctx context.Context, cfg internal.Configuration) error {
	queue := webhook.NewQueue(cfg.Webhook.QueueSize)
	return serve(ctx, newWebhookServer(cfg.Webhook, queue), queue)
}

// newWebhookServer mounts the webhook route and a health check reporting
// the queue fill.
func newWebhookServer(cfg internal.WebhookConfiguration, queue *webhook.Queue) *api.Server {
	server := api.NewServer(cfg.Listen)
	server.AppendRoute("/healthz", func(w http.ResponseWriter, r *http.Request) {
		err := api.WriteResponse(w, map[string]interface{}{
			"status":   "ok",
			"queued":   queue.Len(),
			"capacity": queue.Cap(),
		})
		if err != nil {
			log.Errorf("[api] healthz: %v", err)
		}
	}, http.MethodGet)
	server.PathPrefix("/", webhook.NewRouter(cfg.Path, queue))
	return server
}

// serve runs server until ctx is done, then closes the queue and waits
// for the queued events to be logged.
func serve(ctx context.Context, server *api.Server, queue *webhook.Queue) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for event := range queue.Events() {
			externalID := ""
			if event.ExternalID != nil {
				externalID = *event.ExternalID
			}
			log.WithFields(log.Fields{
				"type":        event.Type,
				"amount_sat":  event.AmountSat,
				"external_id": externalID,
			}).Infof("[webhook] payment %s", event.PaymentHash)
		}
	}()

	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe() }()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = server.Shutdown(shutdownCtx)
		cancel()
	}
	queue.Close()
	<-drained
	return err
}

func printQR(code *qrcode.QRCode) {
	var sb strings.Builder
	for _, row := range code.Bitmap() {
		for _, black := range row {
			if black {
				sb.WriteString("\u2588\u2588")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printResult(v any, err error) error {
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func withRecovery() {
	if r := recover(); r != nil {
		log.Errorln("Recovered panic: ", r)
		debug.PrintStack()
	}
}
