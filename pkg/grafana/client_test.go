package grafana

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetPNG(t *testing.T) {
	pngBytes := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

	tests := []struct {
		name       string
		statusCode int
		body       []byte
		wantErr    bool
	}{
		{
			name:       "success returns body bytes",
			statusCode: http.StatusOK,
			body:       pngBytes,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    true,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			var gotQuery map[string][]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotQuery = r.URL.Query()
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write(tt.body)
			}))
			defer server.Close()

			client := NewClient("abc123")
			req := RenderRequest{
				URL:     server.URL + "/render/d-solo/uid/slug",
				Payload: map[string]string{"orgId": "1", "panelId": "7"},
			}

			png, err := client.GetPNG(context.Background(), req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetPNG() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !bytes.Equal(png, tt.body) {
				t.Errorf("GetPNG() = %v, want %v", png, tt.body)
			}
			if gotAuth != "Bearer abc123" {
				t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer abc123")
			}
			if got := gotQuery["panelId"]; len(got) != 1 || got[0] != "7" {
				t.Errorf("panelId query = %v, want [7]", got)
			}
		})
	}
}

func TestGetPNGTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient("abc123")
	req := RenderRequest{URL: server.URL + "/render/d-solo/uid/slug", Payload: map[string]string{}}

	if _, err := client.GetPNG(context.Background(), req); err == nil {
		t.Error("GetPNG against closed server should return an error")
	}
}
