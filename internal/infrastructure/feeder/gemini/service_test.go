package geminifeeder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	geminifeeder "github.com/lightwallet-tools/zecw/internal/infrastructure/feeder/gemini"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/pubticker/zecusd", r.URL.Path)
		w.Write([]byte(`{"bid":"35.00","ask":"35.20","last":"35.12","volume":{"ZEC":"10"}}`))
	}))
	defer srv.Close()

	rate, err := geminifeeder.NewGeminiFeeder(srv.Client(), srv.URL+"/").ZecToUSD(
		context.Background(),
	)
	require.NoError(t, err)
	require.Equal(t, "35.12", rate.String())
}

func TestFailingService(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"bad_status", http.StatusServiceUnavailable, `{}`},
		{"bad_json", http.StatusOK, `not json`},
		{"bad_price", http.StatusOK, `{"last":"n/a"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			_, err := geminifeeder.NewGeminiFeeder(srv.Client(), srv.URL).ZecToUSD(
				context.Background(),
			)
			require.Error(t, err)
		})
	}
}
