package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkBid(player uuid.UUID, duration float64, isFold bool) models.Bid {
	return models.Bid{
		ID:              uuid.New(),
		PlayerID:        player,
		RoundNumber:     1,
		DurationSeconds: duration,
		IsFold:          isFold,
	}
}

func chargeFor(t *testing.T, out Outcome, player uuid.UUID) Charge {
	t.Helper()
	for _, c := range out.Charges {
		if c.PlayerID == player {
			return c
		}
	}
	t.Fatalf("no charge for player %s", player)
	return Charge{}
}

func TestComputeOutcomeSoleMaxWins(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	out := ComputeOutcome(3, []models.Bid{
		mkBid(a, 12.5, false),
		mkBid(b, 30.0, false),
		mkBid(c, 7.0, false),
	})

	require.NotNil(t, out.WinnerID)
	assert.Equal(t, b, *out.WinnerID)
	assert.False(t, out.Tie)
	assert.Equal(t, 30.0, out.MaxDuration)
	assert.Equal(t, 3, out.Round)
	assert.Len(t, out.Charges, 3)
}

func TestComputeOutcomeTieForfeitsToken(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	out := ComputeOutcome(1, []models.Bid{
		mkBid(a, 7.0, false),
		mkBid(b, 3.0, true),
		mkBid(c, 7.0, false),
	})

	assert.Nil(t, out.WinnerID)
	assert.True(t, out.Tie)
	assert.Equal(t, 7.0, out.MaxDuration)

	// Everyone who held for a positive duration pays, tie or not.
	require.Len(t, out.Charges, 3)
	assert.Equal(t, 7.0, chargeFor(t, out, a).Seconds)
	assert.Equal(t, 3.0, chargeFor(t, out, b).Seconds)
	assert.Equal(t, 7.0, chargeFor(t, out, c).Seconds)
}

func TestComputeOutcomeFoldWithHoldStillCharged(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	out := ComputeOutcome(2, []models.Bid{
		mkBid(a, 4.5, true), // under the fold threshold but held 4.5s
		mkBid(b, 20.0, false),
	})

	require.NotNil(t, out.WinnerID)
	assert.Equal(t, b, *out.WinnerID)

	require.Len(t, out.Charges, 2)
	assert.Equal(t, 4.5, chargeFor(t, out, a).Seconds)
}

func TestComputeOutcomeZeroDurationFoldUncharged(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	out := ComputeOutcome(2, []models.Bid{
		mkBid(a, 0, true),
		mkBid(b, 10.0, false),
	})

	require.NotNil(t, out.WinnerID)
	assert.Equal(t, b, *out.WinnerID)

	// An instant fold costs nothing.
	require.Len(t, out.Charges, 1)
	assert.Equal(t, b, out.Charges[0].PlayerID)
}

func TestComputeOutcomeAllFold(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	out := ComputeOutcome(5, []models.Bid{
		mkBid(a, 2.0, true),
		mkBid(b, 0, true),
	})

	assert.Nil(t, out.WinnerID)
	assert.False(t, out.Tie)
	assert.Equal(t, 0.0, out.MaxDuration)

	require.Len(t, out.Charges, 1)
	assert.Equal(t, a, out.Charges[0].PlayerID)
}

func TestComputeOutcomeMissingBiddersIgnored(t *testing.T) {
	// A forced settlement resolves over whatever bids exist; players who
	// never bid are neither charged nor eligible.
	b := uuid.New()

	out := ComputeOutcome(2, []models.Bid{
		mkBid(b, 15.0, false),
	})

	require.NotNil(t, out.WinnerID)
	assert.Equal(t, b, *out.WinnerID)
	assert.Len(t, out.Charges, 1)
}

func TestComputeOutcomeNoBids(t *testing.T) {
	out := ComputeOutcome(4, nil)

	assert.Nil(t, out.WinnerID)
	assert.False(t, out.Tie)
	assert.Empty(t, out.Charges)
}

func TestComputeOutcomeOrderIndependent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	bids := []models.Bid{
		mkBid(a, 7.0, false),
		mkBid(b, 9.0, false),
		mkBid(c, 9.0, false),
	}

	forward := ComputeOutcome(1, bids)
	reversed := ComputeOutcome(1, []models.Bid{bids[2], bids[1], bids[0]})

	assert.Equal(t, forward.Tie, reversed.Tie)
	assert.Equal(t, forward.MaxDuration, reversed.MaxDuration)
	assert.Nil(t, forward.WinnerID)
	assert.Nil(t, reversed.WinnerID)
}
