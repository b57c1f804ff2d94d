package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LedgerChanged announces that the transactions of a household changed.
// Consumers fetch the data they need through the API.
type LedgerChanged struct {
	HouseholdID  uuid.UUID `json:"householdId"`
	Transactions int       `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewLedgerChanged(householdID uuid.UUID, transactions int) LedgerChanged {
	return LedgerChanged{
		HouseholdID:  householdID,
		Transactions: transactions,
		Timestamp:    time.Now().UTC(),
	}
}

func (m LedgerChanged) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedFromJSON(data []byte) (LedgerChanged, error) {
	var m LedgerChanged
	err := json.Unmarshal(data, &m)
	return m, err
}
