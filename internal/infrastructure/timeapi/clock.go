package timeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmaccaroni/facturas-api/internal/application/billing"
	"github.com/vmaccaroni/facturas-api/pkg/config"
)

// timeAPIResponse respuesta de GET /api/Time/current/zone (timeapi.io).
type timeAPIResponse struct {
	DateTime string `json:"dateTime"`
}

// Layouts aceptados para el campo dateTime (con y sin fracción de segundo).
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

// RemoteClock consulta la hora actual a un servicio externo de tiempo.
type RemoteClock struct {
	baseURL  string
	timezone string
	client   *http.Client
}

// NewRemoteClock construye el cliente del servicio de tiempo.
func NewRemoteClock(cfg config.TimeConfig) *RemoteClock {
	return &RemoteClock{
		baseURL:  cfg.APIBaseURL,
		timezone: cfg.Timezone,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Now obtiene la hora actual de la zona configurada desde el servicio externo.
func (c *RemoteClock) Now(ctx context.Context) (time.Time, error) {
	endpoint := fmt.Sprintf("%s/api/Time/current/zone?timeZone=%s",
		c.baseURL, url.QueryEscape(c.timezone))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("crear request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("consultar servicio de tiempo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("servicio de tiempo respondió %d", resp.StatusCode)
	}
	var body timeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("decodificar respuesta: %w", err)
	}
	if body.DateTime == "" {
		return time.Time{}, fmt.Errorf("respuesta sin dateTime")
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, body.DateTime); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("dateTime con formato inesperado: %q", body.DateTime)
}

var _ billing.ClockSource = (*FallbackClock)(nil)

// FallbackClock envuelve RemoteClock: ante cualquier falla (red, status, parseo)
// registra la degradación y devuelve la hora local. Nunca propaga el error.
type FallbackClock struct {
	remote *RemoteClock
	log    zerolog.Logger
}

// NewFallbackClock construye el reloj con fallback al reloj del sistema.
func NewFallbackClock(remote *RemoteClock, log zerolog.Logger) *FallbackClock {
	return &FallbackClock{remote: remote, log: log}
}

// Now devuelve la hora del servicio externo o, si falla, la hora local.
func (c *FallbackClock) Now(ctx context.Context) time.Time {
	t, err := c.remote.Now(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("servicio de tiempo no disponible, usando hora local")
		return time.Now()
	}
	return t
}

var _ billing.ClockSource = SystemClock{}

// SystemClock devuelve siempre la hora local del sistema.
type SystemClock struct{}

// Now devuelve time.Now().
func (SystemClock) Now(context.Context) time.Time { return time.Now() }
