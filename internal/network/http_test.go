package network

import (
	"net/http"
	"testing"
	"time"

	"github.com/thesimplekid/phoenixd-go/internal"
)

func TestGetClient(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		client, err := GetClient(internal.NetworkConfiguration{TimeoutSeconds: 30})
		if err != nil {
			t.Fatal(err)
		}
		if client.Timeout != 30*time.Second {
			t.Errorf("timeout = %v", client.Timeout)
		}
		if client.Transport != nil {
			t.Errorf("expected default transport, got %T", client.Transport)
		}
	})

	t.Run("socks proxy", func(t *testing.T) {
		client, err := GetClient(internal.NetworkConfiguration{
			SocksProxy: &internal.SocksConfiguration{Host: "127.0.0.1:9050", Username: "u", Password: "p"},
		})
		if err != nil {
			t.Fatal(err)
		}
		transport, ok := client.Transport.(*http.Transport)
		if !ok || transport.DialContext == nil {
			t.Errorf("expected a socks dialing transport, got %#v", client.Transport)
		}
	})

	t.Run("empty proxy host", func(t *testing.T) {
		client, err := GetClient(internal.NetworkConfiguration{SocksProxy: &internal.SocksConfiguration{}})
		if err != nil {
			t.Fatal(err)
		}
		if client.Transport != nil {
			t.Errorf("expected default transport, got %T", client.Transport)
		}
	})
}
