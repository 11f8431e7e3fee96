package enum

// JournalType represents the ledger channel of an account.journal.
type JournalType string

const (
	JournalTypeBank JournalType = "bank"
	JournalTypeCash JournalType = "cash"
	JournalTypeSale JournalType = "sale"
)

func (t JournalType) String() string {
	return string(t)
}
