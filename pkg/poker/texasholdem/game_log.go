package texasholdem

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"walletpoker-server/pkg/deck"
)

// LogMessage describes something that happened during the hand
// If PlayerIDs is empty it's a general statement, otherwise the message reads "{player} did X".
type LogMessage struct {
	UUID      string    `json:"uuid"`
	PlayerIDs []string  `json:"playerIds"`
	Cards     deck.Hand `json:"cards,omitempty"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

func newLogMessage(playerID string, cards deck.Hand, format string, a ...interface{}) *LogMessage {
	var playerIDs []string
	if playerID != "" {
		playerIDs = []string{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Cards:     cards.Clone(),
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

func (t *Table) log(playerID string, format string, a ...interface{}) {
	t.logs = append(t.logs, newLogMessage(playerID, nil, format, a...))
}

func (t *Table) logCards(playerID string, cards deck.Hand, format string, a ...interface{}) {
	t.logs = append(t.logs, newLogMessage(playerID, cards, format, a...))
}

// Logs returns the log messages of the current hand
func (t *Table) Logs() []*LogMessage {
	logs := make([]*LogMessage, len(t.logs))
	copy(logs, t.logs)
	return logs
}
