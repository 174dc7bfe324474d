package application

import (
	"fmt"
	"strconv"

	"github.com/diwise/aqi-bot/domain"
)

var (
	ErrMissingSensorID = &ArgumentError{msg: "!aqi requires the sensor ID as an argument"}
	ErrInvalidSensorID = &ArgumentError{msg: "Failed to parse id"}
)

// ArgumentError is a user facing error about a malformed command
type ArgumentError struct {
	msg string
}

func (e *ArgumentError) Error() string {
	return e.msg
}

// ParseSensorID reads the sensor ID from the arguments following !aqi. Any
// arguments after the first are ignored.
func ParseSensorID(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, ErrMissingSensorID
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidSensorID
	}

	return id, nil
}

func FormatReply(reading domain.SensorAQI) string {
	return fmt.Sprintf(
		"id: %d, pm2.5 data: current %.1f; 10 min %.1f; 30 min %.1f; 6 hour %.1f; 24 hour %.1f",
		reading.ID,
		reading.AQI.Current,
		reading.AQI.TenMinutes,
		reading.AQI.HalfHour,
		reading.AQI.SixHours,
		reading.AQI.OneDay,
	)
}
