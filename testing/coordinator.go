package ibctesting

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	ChainIDPrefix   = "testchain"
	globalStartTime = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	TimeIncrement   = time.Second * 5
)

// Coordinator is a testing struct which contains N TestChain's. It handles keeping all chains
// in sync with regards to time.
type Coordinator struct {
	*testing.T

	CurrentTime time.Time
	Chains      map[string]*TestChain
}

// NewCoordinator initializes Coordinator with N TestChain's
func NewCoordinator(t *testing.T, n int) *Coordinator {
	t.Helper()

	coord := &Coordinator{
		T:           t,
		CurrentTime: globalStartTime,
	}

	chains := make(map[string]*TestChain)
	for i := 1; i <= n; i++ {
		chainID := GetChainID(i)
		chains[chainID] = NewTestChain(t, coord, chainID)
	}
	coord.Chains = chains

	return coord
}

// GetChainID returns the chainID used for the provided index.
func GetChainID(index int) string {
	return ChainIDPrefix + strconv.Itoa(index)
}

// GetChain returns the TestChain using the given chainID and returns an error if it does
// not exist.
func (coord *Coordinator) GetChain(chainID string) *TestChain {
	chain, found := coord.Chains[chainID]
	require.True(coord.T, found, fmt.Sprintf("%s chain does not exist", chainID))
	return chain
}

// IncrementTime iterates through all the TestChain's and increments their current header time
// by 5 seconds.
func (coord *Coordinator) IncrementTime() {
	coord.IncrementTimeBy(TimeIncrement)
}

// IncrementTimeBy iterates through all the TestChain's and increments their current header time
// by specified time.
func (coord *Coordinator) IncrementTimeBy(increment time.Duration) {
	coord.CurrentTime = coord.CurrentTime.Add(increment).UTC()
	coord.UpdateTime()
}

// UpdateTime updates all clocks for the TestChains to the current global time.
func (coord *Coordinator) UpdateTime() {
	for _, chain := range coord.Chains {
		chain.SetTime(coord.CurrentTime)
	}
}

// Setup opens an ics999 channel between the chains of the path.
func (coord *Coordinator) Setup(path *Path) {
	coord.T.Helper()
	require.NoError(coord.T, path.CreateChannels())
}

// timeUntil returns the duration needed for now to pass the timeout, given
// in unix nanoseconds.
func timeUntil(now time.Time, timeoutTimestamp uint64) time.Duration {
	d := time.Duration(int64(timeoutTimestamp) - now.UnixNano())
	if d < 0 {
		return 0
	}
	return d
}
