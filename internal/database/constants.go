package database

// Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to keep open
	DefaultMinConnections = 2

	// DefaultMaxConnections suits the engine's one-bet-in-flight write load
	DefaultMaxConnections = 4
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)
