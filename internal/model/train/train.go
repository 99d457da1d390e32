package train

// DailyService marks a train that runs every day of the week.
const DailyService = "Daily"

// Train is one scheduled service between two stations.
type Train struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Number          string                `json:"number"`
	Type            string                `json:"type"`
	Source          string                `json:"source"`
	Destination     string                `json:"destination"`
	SourceName      string                `json:"sourceName"`
	DestinationName string                `json:"destinationName"`
	Departure       string                `json:"departure"`
	Arrival         string                `json:"arrival"`
	Duration        string                `json:"duration"`
	RunningDays     []string              `json:"runningDays"`
	Classes         []string              `json:"classes"`
	Distance        int                   `json:"distance"`
	AvgSpeed        int                   `json:"avgSpeed"`
	Availability    map[string]SeatStatus `json:"availability,omitempty"`
}

// Clone returns a deep copy so callers can annotate results freely.
func (t Train) Clone() Train {
	t.RunningDays = append([]string(nil), t.RunningDays...)
	t.Classes = append([]string(nil), t.Classes...)
	if t.Availability != nil {
		avail := make(map[string]SeatStatus, len(t.Availability))
		for k, v := range t.Availability {
			avail[k] = v
		}
		t.Availability = avail
	}
	return t
}

// Station identifies a railway station by its unique code.
type Station struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
	Zone  string `json:"zone"`
}

// SeatStatus is the seat picture for one travel class.
type SeatStatus struct {
	Available int `json:"available"`
	Waiting   int `json:"waiting"`
	RAC       int `json:"rac"`
}

// FareRow maps travel class to fare in rupees.
type FareRow map[string]int

// FareTable keys rows by "SRC-DST" station-code pairs.
type FareTable map[string]FareRow

// RouteKey builds the FareTable key for a directed pair.
func RouteKey(source, destination string) string {
	return source + "-" + destination
}
