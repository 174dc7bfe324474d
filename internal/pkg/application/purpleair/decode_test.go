package purpleair

import (
	"errors"
	"testing"

	"github.com/diwise/aqi-bot/domain"
	"github.com/matryer/is"
)

func TestThatSensorResponseIsDecoded(t *testing.T) {
	is := is.New(t)

	resp, err := Decode([]byte(sensorResponse))
	is.NoErr(err)

	is.Equal(len(resp.Results), 1)
	is.Equal(resp.Results[0].ID, uint64(12345))
	is.Equal(resp.Results[0].Label, "Backyard")
	is.Equal(resp.Results[0].Stats, domain.Stats{
		Current:    5.0,
		TenMinutes: 6.0,
		HalfHour:   7.0,
		OneHour:    8.0,
		SixHours:   9.0,
		OneDay:     10.0,
		OneWeek:    11.0,
	})
}

func TestThatAllRecordsAreDecoded(t *testing.T) {
	is := is.New(t)

	resp, err := Decode([]byte(twoRecordsResponse))
	is.NoErr(err)

	is.Equal(len(resp.Results), 2)
	is.Equal(resp.Results[1].ID, uint64(12346))
	is.Equal(resp.Results[1].Stats.OneWeek, 0.5)
}

func TestThatEmptyResultsAreNotAnError(t *testing.T) {
	is := is.New(t)

	resp, err := Decode([]byte(`{"results":[]}`))
	is.NoErr(err)
	is.Equal(len(resp.Results), 0)
}

func TestThatNumericStatsFailsToDecode(t *testing.T) {
	is := is.New(t)

	resp, err := Decode([]byte(`{"results":[{"ID":1,"Label":"a","Stats":17.5}]}`))
	is.True(resp == nil)
	is.True(errors.Is(err, ErrStatsNotString))

	var de *DecodeError
	is.True(errors.As(err, &de))
	is.Equal(de.Field, "results[0].Stats")
}

func TestThatMalformedNestedStatsIsAnErrorNotACrash(t *testing.T) {
	is := is.New(t)

	_, err := Decode([]byte(`{"results":[{"ID":1,"Label":"a","Stats":"{\"v\":5.0,"}]}`))
	is.True(errors.Is(err, ErrMalformedStats))
}

func TestThatDecodeFailuresHaveDistinctKinds(t *testing.T) {
	is := is.New(t)

	testCases := []struct {
		name string
		body string
		kind error
	}{
		{"malformed json", `{"results":[`, ErrMalformedDocument},
		{"not an object", `[1,2,3]`, ErrMalformedDocument},
		{"empty body", ``, ErrMalformedDocument},
		{"missing results", `{"mapVersion":"0.1"}`, ErrMissingResults},
		{"null results", `{"results":null}`, ErrMissingResults},
		{"results not an array", `{"results":{"ID":1}}`, ErrMissingResults},
		{"record not an object", `{"results":[1]}`, ErrMalformedDocument},
		{"id of wrong type", `{"results":[{"ID":"one","Label":"a","Stats":"{}"}]}`, ErrMalformedDocument},
		{"missing id", `{"results":[{"Label":"a","Stats":"{}"}]}`, ErrMissingField},
		{"missing label", `{"results":[{"ID":1,"Stats":"{}"}]}`, ErrMissingField},
		{"missing stats", `{"results":[{"ID":1,"Label":"a"}]}`, ErrMissingField},
		{"stats is an object", `{"results":[{"ID":1,"Label":"a","Stats":{"v":1}}]}`, ErrStatsNotString},
		{"stats is null", `{"results":[{"ID":1,"Label":"a","Stats":null}]}`, ErrStatsNotString},
		{"stats is not json", `{"results":[{"ID":1,"Label":"a","Stats":"not json"}]}`, ErrMalformedStats},
		{"stats is not an object", `{"results":[{"ID":1,"Label":"a","Stats":"[1,2]"}]}`, ErrMalformedStats},
		{"stats reading missing", `{"results":[{"ID":1,"Label":"a","Stats":"{\"v\":1,\"v1\":1,\"v2\":1,\"v3\":1,\"v4\":1,\"v5\":1}"}]}`, ErrInvalidStats},
		{"stats reading null", `{"results":[{"ID":1,"Label":"a","Stats":"{\"v\":null,\"v1\":1,\"v2\":1,\"v3\":1,\"v4\":1,\"v5\":1,\"v6\":1}"}]}`, ErrInvalidStats},
		{"stats reading not a number", `{"results":[{"ID":1,"Label":"a","Stats":"{\"v\":\"high\",\"v1\":1,\"v2\":1,\"v3\":1,\"v4\":1,\"v5\":1,\"v6\":1}"}]}`, ErrInvalidStats},
	}

	for _, tc := range testCases {
		resp, err := Decode([]byte(tc.body))
		is.True(resp == nil)           // no partial results
		is.True(errors.Is(err, tc.kind)) // unexpected error kind

		var de *DecodeError
		is.True(errors.As(err, &de))
		is.True(de.Error() != "")
	}
}

func TestThatMissingReadingIsNamedInError(t *testing.T) {
	is := is.New(t)

	_, err := Decode([]byte(`{"results":[{"ID":1,"Label":"a","Stats":"{\"v\":1,\"v1\":1,\"v2\":1,\"v4\":1,\"v5\":1,\"v6\":1}"}]}`))

	var de *DecodeError
	is.True(errors.As(err, &de))
	is.Equal(de.Field, "results[0].Stats.v3")
}

const sensorResponse string = `{
  "mapVersion": "0.20",
  "baseVersion": "7",
  "results": [
    {
      "ID": 12345,
      "Label": "Backyard",
      "DEVICE_LOCATIONTYPE": "outside",
      "Lat": 62.388618,
      "Lon": 17.308968,
      "PM2_5Value": "5.0",
      "Stats": "{\"v\":5.0,\"v1\":6.0,\"v2\":7.0,\"v3\":8.0,\"v4\":9.0,\"v5\":10.0,\"v6\":11.0}"
    }
  ]
}`

const twoRecordsResponse string = `{
  "results": [
    {
      "ID": 12345,
      "Label": "Backyard",
      "Stats": "{\"v\":5.0,\"v1\":6.0,\"v2\":7.0,\"v3\":8.0,\"v4\":9.0,\"v5\":10.0,\"v6\":11.0}"
    },
    {
      "ID": 12346,
      "ParentID": 12345,
      "Label": "Backyard B",
      "Stats": "{\"v\":1,\"v1\":1,\"v2\":1,\"v3\":1,\"v4\":1,\"v5\":1,\"v6\":0.5}"
    }
  ]
}`
