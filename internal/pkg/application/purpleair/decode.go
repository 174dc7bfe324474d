package purpleair

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diwise/aqi-bot/domain"
	"github.com/diwise/aqi-bot/internal/pkg/infrastructure/jsonstring"
)

type rawResponse struct {
	Results json.RawMessage `json:"results"`
}

type rawRecord struct {
	ID    *uint64         `json:"ID"`
	Label *string         `json:"Label"`
	Stats json.RawMessage `json:"Stats"`
}

// rawStats is the document that the provider serializes into the Stats string
type rawStats struct {
	V  *float64 `json:"v"`
	V1 *float64 `json:"v1"`
	V2 *float64 `json:"v2"`
	V3 *float64 `json:"v3"`
	V4 *float64 `json:"v4"`
	V5 *float64 `json:"v5"`
	V6 *float64 `json:"v6"`
}

// Decode parses a sensor response. Every record must carry an ID, a Label and
// a Stats string holding all seven readings, or decoding fails as a whole.
func Decode(b []byte) (*domain.SensorResponse, error) {
	b = bytes.TrimSpace(b)
	if !json.Valid(b) || len(b) == 0 || b[0] != '{' {
		return nil, decodeError(ErrMalformedDocument, "", nil)
	}

	resp := rawResponse{}
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, decodeError(ErrMalformedDocument, "", err)
	}

	if len(resp.Results) == 0 || bytes.Equal(resp.Results, []byte("null")) {
		return nil, decodeError(ErrMissingResults, "results", nil)
	}

	records := []json.RawMessage{}
	if err := json.Unmarshal(resp.Results, &records); err != nil {
		return nil, decodeError(ErrMissingResults, "results", err)
	}

	result := &domain.SensorResponse{
		Results: make([]domain.SensorRecord, 0, len(records)),
	}

	for i, r := range records {
		sensor, err := decodeRecord(r)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Field = fieldPath(fmt.Sprintf("results[%d]", i), de.Field)
			}
			return nil, err
		}
		result.Results = append(result.Results, *sensor)
	}

	return result, nil
}

func decodeRecord(b json.RawMessage) (*domain.SensorRecord, error) {
	r := rawRecord{}
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, decodeError(ErrMalformedDocument, fieldOf(err), err)
	}

	if r.ID == nil {
		return nil, decodeError(ErrMissingField, "ID", nil)
	}
	if r.Label == nil {
		return nil, decodeError(ErrMissingField, "Label", nil)
	}
	if len(r.Stats) == 0 {
		return nil, decodeError(ErrMissingField, "Stats", nil)
	}

	s, err := decodeStats(r.Stats)
	if err != nil {
		return nil, err
	}

	return &domain.SensorRecord{
		ID:    *r.ID,
		Label: *r.Label,
		Stats: *s,
	}, nil
}

func decodeStats(b json.RawMessage) (*domain.Stats, error) {
	v := jsonstring.Value[rawStats]{}

	if err := v.UnmarshalJSON(b); err != nil {
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.Is(err, jsonstring.ErrNotAString):
			return nil, decodeError(ErrStatsNotString, "Stats", err)
		case errors.Is(err, jsonstring.ErrMalformedContent):
			return nil, decodeError(ErrMalformedStats, "Stats", err)
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return nil, decodeError(ErrInvalidStats, "Stats."+typeErr.Field, err)
		default:
			return nil, decodeError(ErrMalformedStats, "Stats", err)
		}
	}

	s := v.Value
	readings := []struct {
		name  string
		value *float64
	}{
		{"v", s.V}, {"v1", s.V1}, {"v2", s.V2}, {"v3", s.V3}, {"v4", s.V4}, {"v5", s.V5}, {"v6", s.V6},
	}

	for _, r := range readings {
		if r.value == nil {
			return nil, decodeError(ErrInvalidStats, "Stats."+r.name, nil)
		}
	}

	return &domain.Stats{
		Current:    *s.V,
		TenMinutes: *s.V1,
		HalfHour:   *s.V2,
		OneHour:    *s.V3,
		SixHours:   *s.V4,
		OneDay:     *s.V5,
		OneWeek:    *s.V6,
	}, nil
}

func fieldPath(parent, field string) string {
	if field == "" {
		return parent
	}
	return parent + "." + field
}

func fieldOf(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}
