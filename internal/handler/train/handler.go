package train

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sharma-alok1/RailMate/backend/internal/model/train"
	trainService "github.com/sharma-alok1/RailMate/backend/internal/service/train"
	"github.com/sharma-alok1/RailMate/backend/pkg/log"
	"github.com/sharma-alok1/RailMate/backend/pkg/utils"
)

const (
	errRouteRequired       = "Source and destination are required"
	errInvalidStations     = "Invalid station names"
	errInvalidDestination  = "Invalid destination station"
	errFareUnavailable     = "Fare information not available for this route"
	errNumberRequired      = "Train number is required"
	errTrainNotFound       = "Train not found"
	errTypeRequired        = "Train type is required"
	errDestinationRequired = "Destination is required"
	errTrainIDRequired     = "Train ID is required"
	errQueryRequired       = "Station query is required"
	errStationNotFound     = "Station not found"
	errRunningCheckFields  = "Train number and day are required"
	errInternal            = "Failed to process train request"

	dateNotSpecified = "Not specified"
	dateLayout       = "2006-01-02"
)

// Handler 列车查询接口
type Handler struct {
	trains *trainService.Service
	now    func() time.Time
}

// New 创建列车处理器
func New(trains *trainService.Service) *Handler {
	return &Handler{trains: trains, now: time.Now}
}

// RegisterRoutes 注册列车相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/search", h.handleSearch)
	r.Get("/number", h.handleByNumber)
	r.Get("/number/{trainNumber}", h.handleByNumber)
	r.Get("/type", h.handleByType)
	r.Get("/type/{type}", h.handleByType)
	r.Get("/destination", h.handleToDestination)
	r.Get("/destination/{destination}", h.handleToDestination)
	r.Get("/availability", h.handleAvailability)
	r.Get("/fare", h.handleFare)
	r.Get("/station", h.handleStation)
	r.Get("/stations", h.handleStations)
	r.Get("/running-days", h.handleRunningDays)
	r.Get("/running-days/{trainNumber}", h.handleRunningDays)
	r.Get("/running-check", h.handleRunningCheck)
}

type listResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Trains  []train.Train `json:"trains"`
}

type searchResponse struct {
	Success     bool          `json:"success"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Date        string        `json:"date"`
	Count       int           `json:"count"`
	Trains      []train.Train `json:"trains"`
}

type trainResponse struct {
	Success bool        `json:"success"`
	Train   train.Train `json:"train"`
}

type typeResponse struct {
	Success bool          `json:"success"`
	Type    string        `json:"type"`
	Count   int           `json:"count"`
	Trains  []train.Train `json:"trains"`
}

type destinationResponse struct {
	Success     bool          `json:"success"`
	Destination string        `json:"destination"`
	Count       int           `json:"count"`
	Trains      []train.Train `json:"trains"`
}

type availabilityResponse struct {
	Success      bool                        `json:"success"`
	TrainID      string                      `json:"trainId"`
	Date         string                      `json:"date"`
	Availability map[string]train.SeatStatus `json:"availability"`
}

type fareResponse struct {
	Success bool `json:"success"`
	trainService.FareQuote
}

type stationResponse struct {
	Success bool          `json:"success"`
	Station train.Station `json:"station"`
}

type stationsResponse struct {
	Success  bool            `json:"success"`
	Count    int             `json:"count"`
	Stations []train.Station `json:"stations"`
}

type runningDaysResponse struct {
	Success     bool     `json:"success"`
	TrainNumber string   `json:"trainNumber"`
	RunningDays []string `json:"runningDays"`
}

type runningCheckResponse struct {
	Success     bool   `json:"success"`
	TrainNumber string `json:"trainNumber"`
	Day         string `json:"day"`
	IsRunning   bool   `json:"isRunning"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	trains := h.trains.Trains()
	utils.RespondJSON(w, http.StatusOK, listResponse{Success: true, Count: len(trains), Trains: trains})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, destination, date := q.Get("source"), q.Get("destination"), q.Get("date")
	if source == "" || destination == "" {
		utils.RespondError(w, http.StatusBadRequest, errRouteRequired)
		return
	}

	trains, err := h.trains.SearchRoute(source, destination, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if date == "" {
		date = dateNotSpecified
	}
	utils.RespondJSON(w, http.StatusOK, searchResponse{
		Success:     true,
		Source:      source,
		Destination: destination,
		Date:        date,
		Count:       len(trains),
		Trains:      trains,
	})
}

func (h *Handler) handleByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "trainNumber")
	if number == "" {
		utils.RespondError(w, http.StatusBadRequest, errNumberRequired)
		return
	}

	t, ok := h.trains.TrainByNumber(number)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, errTrainNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, trainResponse{Success: true, Train: t})
}

func (h *Handler) handleByType(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "type")
	if kind == "" {
		utils.RespondError(w, http.StatusBadRequest, errTypeRequired)
		return
	}

	trains := h.trains.TrainsByType(kind)
	utils.RespondJSON(w, http.StatusOK, typeResponse{Success: true, Type: kind, Count: len(trains), Trains: trains})
}

func (h *Handler) handleToDestination(w http.ResponseWriter, r *http.Request) {
	destination := chi.URLParam(r, "destination")
	if destination == "" {
		utils.RespondError(w, http.StatusBadRequest, errDestinationRequired)
		return
	}

	trains, err := h.trains.TrainsToDestination(destination)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, destinationResponse{
		Success:     true,
		Destination: destination,
		Count:       len(trains),
		Trains:      trains,
	})
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trainID, date := q.Get("trainId"), q.Get("date")
	if trainID == "" {
		utils.RespondError(w, http.StatusBadRequest, errTrainIDRequired)
		return
	}

	if date == "" {
		date = h.now().Format(dateLayout)
	}
	utils.RespondJSON(w, http.StatusOK, availabilityResponse{
		Success:      true,
		TrainID:      trainID,
		Date:         date,
		Availability: h.trains.Availability(trainID, date),
	})
}

func (h *Handler) handleFare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, destination := q.Get("source"), q.Get("destination")
	if source == "" || destination == "" {
		utils.RespondError(w, http.StatusBadRequest, errRouteRequired)
		return
	}

	quote, err := h.trains.Fare(source, destination, q.Get("className"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, fareResponse{Success: true, FareQuote: quote})
}

func (h *Handler) handleStation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		utils.RespondError(w, http.StatusBadRequest, errQueryRequired)
		return
	}

	station, ok := h.trains.ResolveStation(query)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, errStationNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, stationResponse{Success: true, Station: station})
}

func (h *Handler) handleStations(w http.ResponseWriter, r *http.Request) {
	stations := h.trains.Stations()
	utils.RespondJSON(w, http.StatusOK, stationsResponse{Success: true, Count: len(stations), Stations: stations})
}

func (h *Handler) handleRunningDays(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "trainNumber")
	if number == "" {
		utils.RespondError(w, http.StatusBadRequest, errNumberRequired)
		return
	}

	days, ok := h.trains.RunningDays(number)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, errTrainNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, runningDaysResponse{Success: true, TrainNumber: number, RunningDays: days})
}

func (h *Handler) handleRunningCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	number, day := q.Get("trainNumber"), q.Get("day")
	if number == "" || day == "" {
		utils.RespondError(w, http.StatusBadRequest, errRunningCheckFields)
		return
	}

	utils.RespondJSON(w, http.StatusOK, runningCheckResponse{
		Success:     true,
		TrainNumber: number,
		Day:         day,
		IsRunning:   h.trains.IsRunning(number, day),
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trainService.ErrInvalidStation):
		utils.RespondError(w, http.StatusBadRequest, errInvalidStations)
	case errors.Is(err, trainService.ErrInvalidDestination):
		utils.RespondError(w, http.StatusBadRequest, errInvalidDestination)
	case errors.Is(err, trainService.ErrFareUnavailable):
		utils.RespondError(w, http.StatusBadRequest, errFareUnavailable)
	default:
		log.Error("train request failed", err)
		utils.RespondError(w, http.StatusInternalServerError, errInternal)
	}
}
