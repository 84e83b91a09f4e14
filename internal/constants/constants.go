package constants

import "time"

const (
	// Matches shorter than this are remakes and never count toward history.
	RemakeThreshold = 270 * time.Second

	// Extra match ids requested on top of the wanted count to absorb remakes.
	MatchHistoryBuffer = 5

	TopMasteryCount = 3
	RankedSoloQueue = 420
)

const (
	RequestTimeout  = 60 * time.Second
	ShutdownTimeout = 5 * time.Second
	DatabaseTimeout = 5 * time.Second
)

const (
	MaxBatchSize    = 25
	MaxRequestBytes = 64 << 10
)

const (
	MaxGameNameLength = 50
	MaxTagLineLength  = 20
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)
