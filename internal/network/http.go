package network

import (
	"context"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"

	"github.com/thesimplekid/phoenixd-go/internal"
)

// GetClient returns the http client used to reach the node, dialing
// through a SOCKS5 proxy if one is configured.
func GetClient(cfg internal.NetworkConfiguration) (*http.Client, error) {
	client := http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if cfg.SocksProxy == nil || cfg.SocksProxy.Host == "" {
		return &client, nil
	}
	var auth *proxy.Auth
	if cfg.SocksProxy.Username != "" && cfg.SocksProxy.Password != "" {
		auth = &proxy.Auth{User: cfg.SocksProxy.Username, Password: cfg.SocksProxy.Password}
	}
	d, err := proxy.SOCKS5("tcp", cfg.SocksProxy.Host, auth, &net.Dialer{
		Timeout:   20 * time.Second,
		KeepAlive: -1,
	})
	if err != nil {
		return nil, err
	}
	dialer, ok := d.(proxy.ContextDialer)
	transport := &http.Transport{}
	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		if ok {
			return dialer.DialContext(ctx, network, addr)
		}
		return d.Dial(network, addr)
	}
	client.Transport = transport
	log.Infof("[network] using socks proxy %s", cfg.SocksProxy.Host)
	return &client, nil
}
