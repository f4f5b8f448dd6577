package internal

import (
	"fmt"
	"net/url"

	"github.com/jinzhu/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Configuration struct {
	Phoenixd PhoenixdConfiguration `yaml:"phoenixd"`
	Webhook  WebhookConfiguration  `yaml:"webhook"`
	Network  NetworkConfiguration  `yaml:"network"`
	Log      LogConfiguration      `yaml:"log"`
}

type PhoenixdConfiguration struct {
	Url        string `yaml:"url" env:"API_URL" required:"true"`
	Password   string `yaml:"password" env:"API_PASSWORD" required:"true"`
	WebhookUrl string `yaml:"webhook_url" env:"WEBHOOK_URL"`
}

type WebhookConfiguration struct {
	Listen    string `yaml:"listen" env:"WEBHOOK_LISTEN" default:"127.0.0.1:8081"`
	Path      string `yaml:"path" env:"WEBHOOK_PATH" default:"/webhook"`
	QueueSize int    `yaml:"queue_size" env:"WEBHOOK_QUEUE_SIZE" default:"100"`
}

type SocksConfiguration struct {
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type NetworkConfiguration struct {
	SocksProxy     *SocksConfiguration `yaml:"socks_proxy,omitempty"`
	TimeoutSeconds int                 `yaml:"timeout_seconds"`
}

type LogConfiguration struct {
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`
}

// Load reads .env (if present), then the given yaml files, then the
// environment.
func Load(files ...string) (Configuration, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("[config] no .env loaded: %v", err)
	}
	var c Configuration
	if err := configor.New(&configor.Config{ENVPrefix: "PHOENIXD"}).Load(&c, files...); err != nil {
		return c, err
	}
	if err := c.check(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Configuration) check() error {
	if _, err := parseAbsolute(c.Phoenixd.Url); err != nil {
		return fmt.Errorf("phoenixd url: %w", err)
	}
	if c.Phoenixd.WebhookUrl != "" {
		if _, err := parseAbsolute(c.Phoenixd.WebhookUrl); err != nil {
			return fmt.Errorf("webhook url: %w", err)
		}
	}
	if c.Webhook.QueueSize < 1 {
		return fmt.Errorf("webhook queue size must be positive, got %d", c.Webhook.QueueSize)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func parseAbsolute(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	return u, nil
}
