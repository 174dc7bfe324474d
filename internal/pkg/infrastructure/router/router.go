package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/diwise/aqi-bot/internal/pkg/application"
	"github.com/diwise/aqi-bot/internal/pkg/application/purpleair"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"
)

type Router interface {
	Start(port string) error
}

type routerStruct struct {
	router chi.Router
	app    application.App
	log    zerolog.Logger
}

func SetupRouter(chiRouter chi.Router, app application.App, log zerolog.Logger) *routerStruct {
	r := &routerStruct{
		router: chiRouter,
		app:    app,
		log:    log,
	}

	chiRouter.Use(middleware.Logger)
	chiRouter.Get("/health", r.health)
	chiRouter.Get("/api/sensors/{sensorID}/aqi", r.sensorAQI)

	return r
}

func (r *routerStruct) Start(port string) error {
	r.log.Info().Str("port", port).Msg("starting to listen for connections")
	return http.ListenAndServe(fmt.Sprintf(":%s", port), r.router)
}

func (router *routerStruct) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (router *routerStruct) sensorAQI(w http.ResponseWriter, r *http.Request) {
	sensorID, err := application.ParseSensorID([]string{chi.URLParam(r, "sensorID")})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reading, err := router.app.SensorAQI(r.Context(), sensorID)
	if err != nil {
		router.log.Error().Err(err).Uint64("sensor_id", sensorID).Msg("failed to get aqi for sensor")

		var fetchErr *purpleair.FetchError
		var decodeErr *purpleair.DecodeError

		switch {
		case errors.Is(err, application.ErrSensorNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &fetchErr), errors.As(err, &decodeErr):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	b, err := json.Marshal(reading)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
