package mux

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"walletpoker-server/pkg/poker/texasholdem"
	"walletpoker-server/pkg/room"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string             `json:"message"`
	Reason     texasholdem.Reason `json:"reason,omitempty"`
	StatusCode int                `json:"statusCode"`
}

// writeRoomError maps an error from the pit boss to a status code
// Anything unexpected is a 500 and its message is not returned.
func writeRoomError(w http.ResponseWriter, err error) {
	var illegal *texasholdem.IllegalActionError
	if errors.As(err, &illegal) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message:    illegal.Error(),
			Reason:     illegal.Reason,
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	var ue room.UserError
	switch {
	case errors.As(err, &ue), errors.Is(err, room.ErrTournamentSizeInvalid):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, room.ErrTableNotFound), errors.Is(err, room.ErrNoPendingHand):
		writeJSONError(w, http.StatusNotFound, err)
	case errors.Is(err, room.ErrPlayerNotSeated):
		writeJSONError(w, http.StatusForbidden, err)
	case errors.Is(err, room.ErrTournamentExists), errors.Is(err, texasholdem.ErrHandInProgress):
		writeJSONError(w, http.StatusConflict, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
