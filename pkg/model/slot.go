package model

// ResolvedSlot is the engine's output for one (date, time, staff)
// combination. It is derived on every query and never cached across
// requests: the ledger can change between two calls and a stale flag
// would offer a slot that is already taken.
type ResolvedSlot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	StaffID   string `json:"staff_id"`
	Available bool   `json:"available"`
}
