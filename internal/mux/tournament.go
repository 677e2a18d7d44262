package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"walletpoker-server/pkg/poker/action"
	"walletpoker-server/pkg/room"
)

type postTournamentPayload struct {
	TournamentID string   `json:"tournamentId"`
	Players      []string `json:"players"`
	BuyIn        int      `json:"buyIn"`
	SmallBlind   int      `json:"smallBlind"`
	BigBlind     int      `json:"bigBlind"`
}

func (m *Mux) postTournament() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTournamentPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		snapshot, err := m.pitBoss.Start(r.Context(), pp.TournamentID, pp.Players, pp.BuyIn, room.Blinds{
			Small: pp.SmallBlind,
			Big:   pp.BigBlind,
		})
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snapshot)
	}
}

type postTournamentActionPayload struct {
	Action action.Action `json:"action"`
	Amount int           `json:"amount"`
}

func (m *Mux) postTournamentAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTournamentActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		snapshot, err := m.pitBoss.Act(r.Context(), mux.Vars(r)["id"], playerIDFromContext(r.Context()), pp.Action, pp.Amount)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func (m *Mux) getTournamentState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := m.pitBoss.Query(r.Context(), mux.Vars(r)["id"], playerIDFromContext(r.Context()))
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

type nextHandResponse struct {
	Start time.Time `json:"start"`
}

func (m *Mux) getTournamentNextHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := m.pitBoss.NextHandAt(r.Context(), mux.Vars(r)["id"], playerIDFromContext(r.Context()))
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, nextHandResponse{Start: start})
	}
}

func (m *Mux) postTournamentNextHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := m.pitBoss.StartNextHand(r.Context(), mux.Vars(r)["id"], playerIDFromContext(r.Context()))
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func (m *Mux) deleteTournamentNextHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.pitBoss.CancelNextHand(r.Context(), mux.Vars(r)["id"], playerIDFromContext(r.Context())); err != nil {
			writeRoomError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
