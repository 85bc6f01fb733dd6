package repositories

import (
	intdb "ferryops/internal/db"
)

func nullIfEmpty(s string) any { return intdb.NullIfEmpty(s) }
