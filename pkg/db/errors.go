package db

import "errors"

// ErrNoDSN is returned when no connection string is configured
var ErrNoDSN = errors.New("pgDsn is not configured")
