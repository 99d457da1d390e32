package train

import (
	"errors"
	"strings"

	"github.com/sharma-alok1/RailMate/backend/internal/model/train"
)

var (
	ErrInvalidStation     = errors.New("invalid station names")
	ErrInvalidDestination = errors.New("invalid destination station")
	ErrFareUnavailable    = errors.New("fare information not available for this route")
)

// FareQuote answers a fare lookup. Either ClassName/Fare or AllFares is set.
type FareQuote struct {
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	ClassName   string        `json:"className,omitempty"`
	Fare        int           `json:"fare,omitempty"`
	AllFares    train.FareRow `json:"allFares,omitempty"`
}

// Service answers train directory queries over an immutable catalog.
type Service struct {
	store        train.Store
	availability *AvailabilitySimulator
}

// NewService creates the directory. availability may be nil, in which case a
// clock-seeded simulator is used.
func NewService(store train.Store, availability *AvailabilitySimulator) *Service {
	if availability == nil {
		availability = NewAvailabilitySimulator(0)
	}
	return &Service{store: store, availability: availability}
}

// Trains lists the whole catalog.
func (s *Service) Trains() []train.Train {
	return s.store.Trains()
}

// Stations lists every known station.
func (s *Service) Stations() []train.Station {
	return s.store.Stations()
}

// ResolveStation matches query case-insensitively against station codes,
// then names, then cities. Within each pass the first station in catalog
// order wins.
func (s *Service) ResolveStation(query string) (train.Station, bool) {
	q := strings.ToLower(query)
	if q == "" {
		return train.Station{}, false
	}

	stations := s.store.Stations()
	matchers := []func(train.Station) bool{
		func(st train.Station) bool { return strings.ToLower(st.Code) == q },
		func(st train.Station) bool { return strings.Contains(strings.ToLower(st.Name), q) },
		func(st train.Station) bool { return strings.Contains(strings.ToLower(st.City), q) },
	}
	for _, match := range matchers {
		for _, st := range stations {
			if match(st) {
				return st, true
			}
		}
	}
	return train.Station{}, false
}

// SearchRoute returns direct trains between the two resolved stations. A
// non-empty date attaches a fresh availability snapshot to each result.
func (s *Service) SearchRoute(source, destination, date string) ([]train.Train, error) {
	from, okFrom := s.ResolveStation(source)
	to, okTo := s.ResolveStation(destination)
	if !okFrom || !okTo {
		return nil, ErrInvalidStation
	}

	trains := s.filter(func(t train.Train) bool {
		return t.Source == from.Code && t.Destination == to.Code
	})
	if date != "" {
		for i := range trains {
			trains[i].Availability = s.Availability(trains[i].ID, date)
		}
	}
	return trains, nil
}

// TrainsByType matches the type tag case-insensitively.
func (s *Service) TrainsByType(kind string) []train.Train {
	return s.filter(func(t train.Train) bool {
		return strings.EqualFold(t.Type, kind)
	})
}

// TrainsToDestination lists trains terminating at the resolved station.
func (s *Service) TrainsToDestination(destination string) ([]train.Train, error) {
	to, ok := s.ResolveStation(destination)
	if !ok {
		return nil, ErrInvalidDestination
	}
	return s.filter(func(t train.Train) bool {
		return t.Destination == to.Code
	}), nil
}

// TrainByNumber finds a train by its exact number.
func (s *Service) TrainByNumber(number string) (train.Train, bool) {
	for _, t := range s.store.Trains() {
		if t.Number == number {
			return t, true
		}
	}
	return train.Train{}, false
}

// RunningDays reports the running-day list of a train.
func (s *Service) RunningDays(number string) ([]string, bool) {
	t, ok := s.TrainByNumber(number)
	if !ok {
		return nil, false
	}
	return t.RunningDays, true
}

// IsRunning reports whether the train runs on day. Only the first three
// characters of day are compared, case-sensitively; "Daily" matches any day.
func (s *Service) IsRunning(number, day string) bool {
	days, ok := s.RunningDays(number)
	if !ok {
		return false
	}

	abbr := day
	if r := []rune(day); len(r) > 3 {
		abbr = string(r[:3])
	}
	for _, d := range days {
		if d == train.DailyService || d == abbr {
			return true
		}
	}
	return false
}

// Availability returns a simulated seat snapshot. trainID and date are
// accepted for the API shape only; they do not influence the numbers.
func (s *Service) Availability(trainID, date string) map[string]train.SeatStatus {
	return s.availability.Snapshot()
}

// Fare looks up the fare row for the station pair in either direction. When
// className is present in the row only that fare is returned.
func (s *Service) Fare(source, destination, className string) (FareQuote, error) {
	from, okFrom := s.ResolveStation(source)
	to, okTo := s.ResolveStation(destination)
	if !okFrom || !okTo {
		return FareQuote{}, ErrInvalidStation
	}

	row, ok := s.store.Fare(from.Code, to.Code)
	if !ok {
		row, ok = s.store.Fare(to.Code, from.Code)
	}
	if !ok {
		return FareQuote{}, ErrFareUnavailable
	}

	quote := FareQuote{Source: from.Code, Destination: to.Code}
	if fare, found := row[className]; className != "" && found {
		quote.ClassName = className
		quote.Fare = fare
		return quote, nil
	}
	quote.AllFares = row
	return quote, nil
}

func (s *Service) filter(keep func(train.Train) bool) []train.Train {
	out := make([]train.Train, 0)
	for _, t := range s.store.Trains() {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
