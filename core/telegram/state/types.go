package state

// Manager is the per-user state contract; *Store satisfies it.
type Manager[S comparable] interface {
	Get(userID int64) S
	Set(userID int64, st S)
	Clear(userID int64)
	Take(userID int64) S
	InProgress(userID int64) bool
}
