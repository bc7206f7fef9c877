package repository

// Store bundles every repository a storage backend provides
type Store interface {
	Catalog
	Profiles
	Transactions
	ActivityLog
}
