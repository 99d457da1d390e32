package train

func weekdayRun() []string { return []string{"Mon", "Wed", "Fri", "Sun"} }
func dailyRun() []string   { return []string{DailyService} }
func berthClass() []string { return []string{"1A", "2A", "3A", "SL"} }

// SeedTrains provides the built-in train catalog.
func SeedTrains() []Train {
	return []Train{
		{
			ID: "12951", Name: "Rajdhani Express", Number: "12951", Type: "Rajdhani",
			Source: "NDLS", Destination: "BCT", SourceName: "New Delhi", DestinationName: "Mumbai Central",
			Departure: "16:55", Arrival: "08:35", Duration: "15h 40m",
			RunningDays: weekdayRun(), Classes: berthClass(), Distance: 1384, AvgSpeed: 88,
		},
		{
			ID: "12009", Name: "Shatabdi Express", Number: "12009", Type: "Shatabdi",
			Source: "NDLS", Destination: "BCT", SourceName: "New Delhi", DestinationName: "Mumbai Central",
			Departure: "06:00", Arrival: "23:55", Duration: "17h 55m",
			RunningDays: dailyRun(), Classes: berthClass(), Distance: 1384, AvgSpeed: 77,
		},
		{
			ID: "12627", Name: "Karnataka Express", Number: "12627", Type: "Express",
			Source: "NDLS", Destination: "SBC", SourceName: "New Delhi", DestinationName: "Bangalore City",
			Departure: "20:30", Arrival: "05:30", Duration: "33h 00m",
			RunningDays: dailyRun(), Classes: berthClass(), Distance: 2367, AvgSpeed: 72,
		},
		{
			ID: "12636", Name: "Tamil Nadu Express", Number: "12636", Type: "Express",
			Source: "NDLS", Destination: "MAS", SourceName: "New Delhi", DestinationName: "Chennai Central",
			Departure: "22:30", Arrival: "04:00", Duration: "29h 30m",
			RunningDays: dailyRun(), Classes: berthClass(), Distance: 2180, AvgSpeed: 74,
		},
		{
			ID: "12301", Name: "Rajdhani Express", Number: "12301", Type: "Rajdhani",
			Source: "NDLS", Destination: "HWH", SourceName: "New Delhi", DestinationName: "Howrah",
			Departure: "16:55", Arrival: "10:00", Duration: "17h 05m",
			RunningDays: weekdayRun(), Classes: berthClass(), Distance: 1448, AvgSpeed: 85,
		},
		{
			ID: "12019", Name: "Shatabdi Express", Number: "12019", Type: "Shatabdi",
			Source: "MAS", Destination: "SBC", SourceName: "Chennai Central", DestinationName: "Bangalore City",
			Departure: "06:00", Arrival: "13:00", Duration: "7h 00m",
			RunningDays: dailyRun(), Classes: []string{"CC", "EC"}, Distance: 350, AvgSpeed: 50,
		},
		{
			ID: "12621", Name: "Tamil Nadu Express", Number: "12621", Type: "Express",
			Source: "MAS", Destination: "NDLS", SourceName: "Chennai Central", DestinationName: "New Delhi",
			Departure: "22:30", Arrival: "04:00", Duration: "29h 30m",
			RunningDays: dailyRun(), Classes: berthClass(), Distance: 2180, AvgSpeed: 74,
		},
		{
			ID: "12609", Name: "Karnataka Express", Number: "12609", Type: "Express",
			Source: "SBC", Destination: "NDLS", SourceName: "Bangalore City", DestinationName: "New Delhi",
			Departure: "20:30", Arrival: "05:30", Duration: "33h 00m",
			RunningDays: dailyRun(), Classes: berthClass(), Distance: 2367, AvgSpeed: 72,
		},
	}
}

// SeedStations lists stations in lookup priority order.
func SeedStations() []Station {
	return []Station{
		{Code: "NDLS", Name: "New Delhi", City: "Delhi", State: "Delhi", Zone: "NR"},
		{Code: "BCT", Name: "Mumbai Central", City: "Mumbai", State: "Maharashtra", Zone: "WR"},
		{Code: "MAS", Name: "Chennai Central", City: "Chennai", State: "Tamil Nadu", Zone: "SR"},
		{Code: "SBC", Name: "Bangalore City", City: "Bangalore", State: "Karnataka", Zone: "SWR"},
		{Code: "HWH", Name: "Howrah", City: "Kolkata", State: "West Bengal", Zone: "ER"},
		{Code: "CSTM", Name: "Chhatrapati Shivaji Terminus", City: "Mumbai", State: "Maharashtra", Zone: "CR"},
		{Code: "PNBE", Name: "Patna Junction", City: "Patna", State: "Bihar", Zone: "ECR"},
		{Code: "LKO", Name: "Lucknow Junction", City: "Lucknow", State: "Uttar Pradesh", Zone: "NER"},
		{Code: "JHS", Name: "Jhansi Junction", City: "Jhansi", State: "Uttar Pradesh", Zone: "NCR"},
		{Code: "BPL", Name: "Bhopal Junction", City: "Bhopal", State: "Madhya Pradesh", Zone: "WCR"},
		{Code: "JBP", Name: "Jabalpur Junction", City: "Jabalpur", State: "Madhya Pradesh", Zone: "WCR"},
		{Code: "NGP", Name: "Nagpur Junction", City: "Nagpur", State: "Maharashtra", Zone: "CR"},
		{Code: "PUNE", Name: "Pune Junction", City: "Pune", State: "Maharashtra", Zone: "CR"},
	}
}

// SeedFares holds one direction per station pair; lookups try both.
func SeedFares() FareTable {
	return FareTable{
		"NDLS-BCT": {"SL": 755, "3A": 1995, "2A": 2995, "1A": 5095},
		"NDLS-SBC": {"SL": 1295, "3A": 3495, "2A": 5195, "1A": 8995},
		"NDLS-MAS": {"SL": 1195, "3A": 3195, "2A": 4695, "1A": 7995},
		"NDLS-HWH": {"SL": 1095, "3A": 2895, "2A": 4295, "1A": 7295},
		"MAS-SBC":  {"SL": 295, "3A": 795, "2A": 1195, "1A": 1995, "CC": 595, "EC": 995},
	}
}

// NewSeedStore returns a MemoryStore over the built-in catalog.
func NewSeedStore() *MemoryStore {
	return NewMemoryStore(SeedTrains(), SeedStations(), SeedFares())
}
