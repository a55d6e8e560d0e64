package weather

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const forecastPayload = `{
  "forecast": {
    "forecastday": [
      {
        "day": {
          "maxtemp_c": 23.4,
          "mintemp_c": 14.1,
          "avghumidity": 68,
          "daily_chance_of_rain": 35
        }
      }
    ]
  }
}`

func TestAPIClientFetch(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/forecast.json", r.URL.Path)
        q := r.URL.Query()
        assert.Equal(t, "test-key", q.Get("key"))
        assert.Equal(t, "aveiro", q.Get("q"))
        assert.Equal(t, "2025-06-02", q.Get("dt"))
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(forecastPayload))
    }))
    defer srv.Close()

    client := NewAPIClient(srv.URL, "test-key", 2*time.Second)
    day, err := client.Fetch(context.Background(), "aveiro", time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC))
    require.NoError(t, err)
    assert.Equal(t, 23.4, day.MaxTemperature)
    assert.Equal(t, 14.1, day.MinTemperature)
    assert.Equal(t, 68.0, day.Humidity)
    assert.Equal(t, 35.0, day.ChanceOfRain)
}

func TestAPIClientFetchErrors(t *testing.T) {
    tests := []struct {
        name    string
        status  int
        payload string
    }{
        {"upstream error status", http.StatusInternalServerError, ""},
        {"not found status", http.StatusNotFound, `{"error":{"message":"no matching location"}}`},
        {"empty forecast", http.StatusOK, `{"forecast":{"forecastday":[]}}`},
        {"malformed json", http.StatusOK, `{"forecast":`},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
                w.WriteHeader(tt.status)
                _, _ = w.Write([]byte(tt.payload))
            }))
            defer srv.Close()

            client := NewAPIClient(srv.URL, "test-key", 2*time.Second)
            _, err := client.Fetch(context.Background(), "aveiro", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
            assert.Error(t, err)
        })
    }
}
