package model

import "time"

// JournalAction is what the indexer did with a block.
type JournalAction string

const (
	JournalApplied  JournalAction = "applied"
	JournalReverted JournalAction = "reverted"
	JournalPurged   JournalAction = "purged"
)

// JournalEntry records one indexer action for auditing.
type JournalEntry struct {
	Network    Network
	Action     JournalAction
	Height     uint64
	Hash       Hash
	ParentHash Hash
	Created    uint32
	Spent      uint32
	Removed    uint32
	Time       time.Time
}
