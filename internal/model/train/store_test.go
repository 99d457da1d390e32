package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedStoreCatalogSize(t *testing.T) {
	store := NewSeedStore()

	assert.Len(t, store.Trains(), 8)
	assert.Len(t, store.Stations(), 13)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewSeedStore()

	trains := store.Trains()
	trains[0].RunningDays[0] = "Tue"
	trains[0].Availability = map[string]SeatStatus{"SL": {Available: 1}}

	fresh := store.Trains()
	assert.Equal(t, "Mon", fresh[0].RunningDays[0])
	assert.Nil(t, fresh[0].Availability)

	row, ok := store.Fare("NDLS", "BCT")
	require.True(t, ok)
	row["3A"] = 1

	row, _ = store.Fare("NDLS", "BCT")
	assert.Equal(t, 1995, row["3A"])
}

func TestMemoryStoreFareIsDirected(t *testing.T) {
	store := NewSeedStore()

	_, ok := store.Fare("BCT", "NDLS")
	assert.False(t, ok)
}

func TestNewMemoryStoreIsolatedFromCallerSlices(t *testing.T) {
	trains := SeedTrains()
	store := NewMemoryStore(trains, nil, nil)

	trains[0].Classes[0] = "XX"
	assert.Equal(t, "1A", store.Trains()[0].Classes[0])
}
