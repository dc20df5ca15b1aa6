package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCT(t *testing.T) {
	t.Run("adds the exploration bonus to the average reward", func(t *testing.T) {
		c2LnN := math.Log(4) // parent visited 4 times, c^2 = 1

		got := uct(1, 2, c2LnN)

		require.InDelta(t, 0.5+math.Sqrt(math.Log(4)/2), got, 1e-12)
	})

	t.Run("less visited successor gets the larger bonus", func(t *testing.T) {
		c2LnN := math.Log(10)

		require.Greater(t, uct(0.5, 1, c2LnN), uct(0.5, 5, c2LnN))
	})

	t.Run("panics on zero visits", func(t *testing.T) {
		require.Panics(t, func() { uct(1, 0, 1) })
	})
}

func TestExploit(t *testing.T) {
	t.Run("averages the accumulated reward", func(t *testing.T) {
		require.InDelta(t, 0.8, exploit(2.4, 3), 1e-12)
	})

	t.Run("scores an unvisited successor at negative infinity", func(t *testing.T) {
		require.Equal(t, math.Inf(-1), exploit(0, 0))
	})
}
