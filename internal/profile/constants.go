package profile

import "time"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// CacheSchemaVersion is bumped when the cached profile shape changes
const CacheSchemaVersion = "1.0"

// Log messages
const (
	LogMsgProfileCreated  = "Created visitor profile"
	LogMsgDemoSeeded      = "Seeded demo profile"
	LogMsgDemoExists      = "Demo profile already present"
	LogMsgWalletConnected = "Wallet connected"
)
