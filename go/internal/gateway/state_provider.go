package gateway

import (
	"context"
	"fmt"

	"github.com/mcdev12/timeauction/go/internal/bid"
	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/mcdev12/timeauction/go/internal/player"
	"github.com/mcdev12/timeauction/go/internal/room"
)

// GameStateProvider implements StateProvider over the domain apps.
// The confidentiality boundary lives here: the engine and the bid store
// always know full durations, readers only see what their role allows.
type GameStateProvider struct {
	rooms   *room.App
	players *player.App
	bids    *bid.App
}

// NewGameStateProvider creates a new game state provider
func NewGameStateProvider(rooms *room.App, players *player.App, bids *bid.App) *GameStateProvider {
	return &GameStateProvider{
		rooms:   rooms,
		players: players,
		bids:    bids,
	}
}

// GetGameState assembles the room, ranked roster and current-round bids,
// redacted for the reader's role.
func (p *GameStateProvider) GetGameState(ctx context.Context, role string) (*GameStateResponse, error) {
	r, err := p.rooms.GetRoom(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	roster, err := p.players.ListRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	bids, err := p.bids.ListByRound(ctx, r.CurrentRound)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	resp := &GameStateResponse{
		Room: RoomInfo{
			RoomID:            r.ID.String(),
			Status:            string(r.Status),
			CurrentRound:      r.CurrentRound,
			TotalRounds:       r.TotalRounds,
			InitialTimeBudget: r.InitialTimeBudget,
			FoldThreshold:     r.FoldThreshold,
			UpdatedAt:         r.UpdatedAt,
		},
		Players: make([]PlayerInfo, len(roster)),
		Bids:    make([]BidInfo, len(bids)),
	}

	for i, pl := range roster {
		resp.Players[i] = PlayerInfo{
			PlayerID:   pl.ID.String(),
			Name:       pl.Name,
			TimeLeft:   pl.TimeLeft,
			Tokens:     pl.Tokens,
			Eliminated: pl.Eliminated,
		}
	}

	sealed := r.Status == models.RoomStatusBidding && role != RoleAdmin
	for i, b := range bids {
		info := BidInfo{
			PlayerID: b.PlayerID.String(),
			HasBid:   true,
		}
		if !sealed {
			duration := b.DurationSeconds
			isFold := b.IsFold
			info.DurationSeconds = &duration
			info.IsFold = &isFold
		}
		resp.Bids[i] = info
	}

	return resp, nil
}
