package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/wsbroker/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.10:4321", want: "192.0.2.10"},
		{name: "cloudflare wins", headers: map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Real-IP": "198.51.100.1"}, remoteAddr: "10.0.0.1:1", want: "203.0.113.5"},
		{name: "forwarded leftmost", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"}, remoteAddr: "10.0.0.1:1", want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.9"}, remoteAddr: "10.0.0.1:1", want: "198.51.100.9"},
		{name: "invalid header skipped", headers: map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "198.51.100.9"}, remoteAddr: "10.0.0.1:1", want: "198.51.100.9"},
		{name: "unspecified rejected", headers: map[string]string{"X-Real-IP": "0.0.0.0"}, remoteAddr: "10.0.0.1:1", want: "10.0.0.1"},
		{name: "ipv6", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "unparseable remote addr", remoteAddr: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}
