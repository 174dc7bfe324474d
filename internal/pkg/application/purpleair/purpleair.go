package purpleair

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/diwise/aqi-bot/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

const DefaultBaseURL string = "https://www.purpleair.com"

type Client interface {
	GetSensorData(ctx context.Context, sensorID uint64) (*domain.SensorResponse, error)
}

type client struct {
	baseUrl    string
	httpClient *http.Client
	timeout    time.Duration
}

type ClientOption func(*client)

var tracer = otel.Tracer("aqi-bot/purpleair")

func New(baseUrl string, opts ...ClientOption) Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseURL
	}

	c := &client{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		// never modify a client handed to us through WithHTTPClient
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// WithTimeout sets a timeout for requests to the provider. Zero means no
// timeout other than what the transport enforces.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *client) {
		c.timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

func (c *client) sensorURL(sensorID uint64) string {
	return fmt.Sprintf("%s/json?show=%d", c.baseUrl, sensorID)
}

func (c *client) GetSensorData(ctx context.Context, sensorID uint64) (*domain.SensorResponse, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-sensor-data")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	logger := logging.GetFromContext(ctx)
	url := c.sensorURL(sensorID)

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
		return nil, err
	}
	req.Header.Add("Accept", "application/json")

	var resp *http.Response
	resp, err = c.httpClient.Do(req)
	if err != nil {
		err = &FetchError{URL: url, Err: err}
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = &FetchError{URL: url, StatusCode: resp.StatusCode}
		return nil, err
	}

	var body []byte
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
		return nil, err
	}

	var sensorResponse *domain.SensorResponse
	sensorResponse, err = Decode(body)
	if err != nil {
		logger.Debug().Str("body", string(body)).Msg("failed to decode sensor response")
		return nil, err
	}

	return sensorResponse, nil
}
