package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diwise/aqi-bot/domain"
	"github.com/diwise/aqi-bot/internal/pkg/application/aqi"
	"github.com/diwise/aqi-bot/internal/pkg/application/purpleair"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

const (
	PingCommand string = "!ping"
	AQICommand  string = "!aqi"
)

var ErrSensorNotFound = errors.New("no data found for sensor")

type App interface {
	// HandleCommand returns the reply to a chat message and whether the
	// message was a command at all.
	HandleCommand(ctx context.Context, content string) (string, bool)
	SensorAQI(ctx context.Context, sensorID uint64) (*domain.SensorAQI, error)
}

type app struct {
	client purpleair.Client
}

var tracer = otel.Tracer("aqi-bot/app")

func New(client purpleair.Client) App {
	return &app{
		client: client,
	}
}

func (a *app) HandleCommand(ctx context.Context, content string) (string, bool) {
	args := strings.Fields(content)
	if len(args) == 0 {
		return "", false
	}

	switch args[0] {
	case PingCommand:
		if len(args) != 1 {
			return "", false
		}
		return "Pong!", true
	case AQICommand:
		return a.handleAQI(ctx, args[1:]), true
	default:
		return "", false
	}
}

func (a *app) handleAQI(ctx context.Context, args []string) string {
	sensorID, err := ParseSensorID(args)
	if err != nil {
		logger := logging.GetFromContext(ctx)
		logger.Debug().Err(err).Msg("invalid aqi command")
		return err.Error()
	}

	ctx, span := tracer.Start(ctx, "handle-aqi-command")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx).With().Uint64("sensor_id", sensorID).Logger()
	_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

	var reading *domain.SensorAQI
	reading, err = a.SensorAQI(ctx, sensorID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to get aqi for sensor")
		return errorReply(sensorID, err)
	}

	return FormatReply(*reading)
}

func (a *app) SensorAQI(ctx context.Context, sensorID uint64) (*domain.SensorAQI, error) {
	resp, err := a.client.GetSensorData(ctx, sensorID)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w %d", ErrSensorNotFound, sensorID)
	}

	sensor := resp.Results[0]

	return &domain.SensorAQI{
		ID:    sensor.ID,
		Label: sensor.Label,
		AQI:   aqi.FromStats(sensor.Stats),
	}, nil
}

func errorReply(sensorID uint64, err error) string {
	var fetchErr *purpleair.FetchError
	var decodeErr *purpleair.DecodeError

	switch {
	case errors.Is(err, ErrSensorNotFound):
		return err.Error()
	case errors.As(err, &fetchErr):
		return fmt.Sprintf("failed to fetch data for sensor %d: %s", sensorID, err.Error())
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("failed to read data for sensor %d: %s", sensorID, err.Error())
	default:
		return fmt.Sprintf("failed to get data for sensor %d", sensorID)
	}
}
