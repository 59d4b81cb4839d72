package db

type dialect struct {
	name string
	// lockSuffix is appended to locking reads. SQLite has no row locks; its
	// write transactions already hold the database lock.
	lockSuffix string
	// returningID is set when inserts report the new key via RETURNING
	// instead of LastInsertId.
	returningID bool
}

func dialectFor(driverName string) dialect {
	switch driverName {
	case DriverSQLite:
		return dialect{name: DriverSQLite}
	case DriverPostgres:
		return dialect{name: DriverPostgres, lockSuffix: " FOR UPDATE", returningID: true}
	default:
		return dialect{name: DriverMySQL, lockSuffix: " FOR UPDATE"}
	}
}
