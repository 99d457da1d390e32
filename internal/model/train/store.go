package train

// Store exposes the immutable train catalog.
type Store interface {
	Trains() []Train
	Stations() []Station
	Fare(source, destination string) (FareRow, bool)
}

// MemoryStore implements Store over data loaded once at startup.
type MemoryStore struct {
	trains   []Train
	stations []Station
	fares    FareTable
}

// NewMemoryStore copies the supplied records so later mutation by the caller
// cannot leak into the catalog.
func NewMemoryStore(trains []Train, stations []Station, fares FareTable) *MemoryStore {
	s := &MemoryStore{
		trains:   make([]Train, 0, len(trains)),
		stations: append([]Station(nil), stations...),
		fares:    make(FareTable, len(fares)),
	}
	for _, t := range trains {
		s.trains = append(s.trains, t.Clone())
	}
	for key, row := range fares {
		s.fares[key] = copyRow(row)
	}
	return s
}

// Trains returns the catalog in load order.
func (s *MemoryStore) Trains() []Train {
	out := make([]Train, 0, len(s.trains))
	for _, t := range s.trains {
		out = append(out, t.Clone())
	}
	return out
}

// Stations returns the station list in load order.
func (s *MemoryStore) Stations() []Station {
	return append([]Station(nil), s.stations...)
}

// Fare looks up the row stored under the exact directed key.
func (s *MemoryStore) Fare(source, destination string) (FareRow, bool) {
	row, ok := s.fares[RouteKey(source, destination)]
	if !ok {
		return nil, false
	}
	return copyRow(row), true
}

func copyRow(row FareRow) FareRow {
	out := make(FareRow, len(row))
	for class, fare := range row {
		out[class] = fare
	}
	return out
}
