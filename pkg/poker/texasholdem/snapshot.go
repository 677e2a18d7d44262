package texasholdem

import (
	"walletpoker-server/pkg/deck"
	"walletpoker-server/pkg/poker/action"
	"walletpoker-server/pkg/poker/handanalyzer"
)

// SeatSnapshot is a seat as one viewer is allowed to see it
type SeatSnapshot struct {
	PlayerID     string                   `json:"playerId"`
	Index        int                      `json:"seat"`
	Chips        int                      `json:"chips"`
	Bet          int                      `json:"currentBet"`
	Contributed  int                      `json:"contributed"`
	HoleCards    deck.Hand                `json:"holeCards"`
	Status       SeatStatus               `json:"status"`
	LastAction   action.Action            `json:"lastAction,omitempty"`
	IsDealer     bool                     `json:"isDealer"`
	IsSmallBlind bool                     `json:"isSmallBlind"`
	IsBigBlind   bool                     `json:"isBigBlind"`
	Hand         *handanalyzer.Evaluation `json:"hand,omitempty"`
	Winnings     int                      `json:"winnings"`
}

// Snapshot is a copy of the table with hidden information removed
// Nothing in it is modified by the table afterwards, so it can leave the goroutine that owns
// the table.
type Snapshot struct {
	TableID      string            `json:"tableId"`
	TournamentID string            `json:"tournamentId"`
	HandID       string            `json:"handId"`
	HandNumber   int               `json:"handNumber"`
	Seats        []SeatSnapshot    `json:"seats"`
	Community    deck.Hand         `json:"communityCards"`
	Pot          int               `json:"pot"`
	CurrentBet   int               `json:"currentBet"`
	ActingSeat   *int              `json:"actingSeat"`
	DealerSeat   int               `json:"dealerSeat"`
	SmallBlind   int               `json:"smallBlind"`
	BigBlind     int               `json:"bigBlind"`
	Round        Round             `json:"bettingRound"`
	Status       Status            `json:"status"`
	Actions      []AvailableAction `json:"availableActions"`
	Logs         []*LogMessage     `json:"logs"`
}

// Snapshot returns the table as viewerID sees it
// Hole cards are hidden except the viewer's own, and those of every seat that went to a
// contested showdown. An empty viewerID sees nobody's cards until the showdown.
func (t *Table) Snapshot(viewerID string) Snapshot {
	seats := make([]SeatSnapshot, len(t.seats))
	viewerSeat := -1
	for i, seat := range t.seats {
		ss := SeatSnapshot{
			PlayerID:     seat.PlayerID,
			Index:        seat.Index,
			Chips:        seat.Chips,
			Bet:          seat.Bet,
			Contributed:  seat.Contributed,
			Status:       seat.Status,
			LastAction:   seat.LastAction,
			IsDealer:     seat.IsDealer,
			IsSmallBlind: seat.IsSmallBlind,
			IsBigBlind:   seat.IsBigBlind,
			Winnings:     seat.winnings,
		}

		if viewerID != "" && seat.PlayerID == viewerID {
			viewerSeat = i
		}

		if t.canSee(viewerID, seat) {
			ss.HoleCards = seat.HoleCards.Clone()
			if seat.evaluation != nil {
				evaluation := *seat.evaluation
				evaluation.Cards = evaluation.Cards.Clone()
				ss.Hand = &evaluation
			}
		}

		seats[i] = ss
	}

	var actingSeat *int
	if t.actingSeat >= 0 {
		acting := t.actingSeat
		actingSeat = &acting
	}

	var actions []AvailableAction
	if viewerSeat >= 0 {
		actions = t.AvailableActions(viewerSeat)
	}

	return Snapshot{
		TableID:      t.ID,
		TournamentID: t.TournamentID,
		HandID:       t.handID,
		HandNumber:   t.handNumber,
		Seats:        seats,
		Community:    t.community.Clone(),
		Pot:          t.pot,
		CurrentBet:   t.currentBet,
		ActingSeat:   actingSeat,
		DealerSeat:   t.dealerSeat,
		SmallBlind:   t.options.SmallBlind,
		BigBlind:     t.options.BigBlind,
		Round:        t.round,
		Status:       t.status,
		Actions:      actions,
		Logs:         t.Logs(),
	}
}

func (t *Table) canSee(viewerID string, seat *Seat) bool {
	if viewerID != "" && seat.PlayerID == viewerID {
		return true
	}

	// only set for seats that went to a contested showdown
	return seat.evaluation != nil
}
