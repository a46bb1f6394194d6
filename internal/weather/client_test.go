package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gottomy2/departures/config"
	"github.com/stretchr/testify/assert"
)

func TestClient_FetchTemperature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Warsaw", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main":{"temp":21.3,"humidity":40}}`))
	}))
	defer srv.Close()

	client := NewClient(config.WeatherConfig{APIURL: srv.URL, APIKey: "test-key"})

	temp, err := client.FetchTemperature(context.Background(), "Warsaw")
	assert.NoError(t, err)
	assert.Equal(t, 21.3, temp)
}

func TestClient_FetchTemperature_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(config.WeatherConfig{APIURL: srv.URL, APIKey: "bad-key"})

	_, err := client.FetchTemperature(context.Background(), "Warsaw")
	assert.Error(t, err)
}

func TestClient_FetchTemperature_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(config.WeatherConfig{APIURL: srv.URL, APIKey: "test-key"})

	_, err := client.FetchTemperature(context.Background(), "Warsaw")
	assert.Error(t, err)
}
