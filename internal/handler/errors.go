package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidCropID         = "Invalid crop id"
	ErrMsgInvalidSessionID      = "Invalid checkout session id"
	ErrMsgInvalidUserID         = "Invalid user id"
	ErrMsgExportFailed          = "Failed to export ledger"
)

// User-facing messages derived from domain errors
const (
	ErrMsgCropNotFound          = "Crop not found"
	ErrMsgSessionNotFound       = "Checkout session not found"
	ErrMsgTransactionNotFound   = "Transaction not found"
	ErrMsgProvinceNotFound      = "Province not found"
	ErrMsgProfileNotFound       = "Visitor not found"
	ErrMsgGuideEntryNotFound    = "The guide has nothing on that crop yet"
	ErrMsgCropAlreadyAdopted    = "This seed has already been adopted"
	ErrMsgCheckoutAlreadyActive = "You already have a checkout in progress for this seed"
	ErrMsgInvalidTransition     = "That step is not available right now"
	ErrMsgQuestCompleted        = "You already completed this province"
	ErrMsgInvalidPaymentMethod  = "Unsupported payment method"
	ErrMsgWalletRequired        = "Connect a wallet to pay with crypto"
	ErrMsgUnknownWallet         = "Unknown wallet provider"
	ErrMsgUnknownSection        = "Unknown museum section"
	ErrMsgUnknownPlatform       = "Unknown share platform"
	ErrMsgInvalidAnswer         = "Answer option out of range"
)

// Success messages
const (
	MsgCheckoutCancelled = "Checkout cancelled"
)

// Log messages
const (
	LogMsgEncodeFailed   = "Failed to encode JSON response"
	LogMsgWriteFailed    = "Failed to write response buffer"
	LogMsgDecodeFailed   = "Failed to decode request"
	LogMsgReadinessFail  = "Readiness check failed"
	LogMsgExportComplete = "Ledger exported"
)

// Pagination
const (
	DefaultFeedLimit        = 20
	MaxFeedLimit            = 100
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// Query parameter names
const (
	QueryParamUser     = "user"
	QueryParamLimit    = "limit"
	QueryParamSearch   = "search"
	QueryParamType     = "type"
	QueryParamRarity   = "rarity"
	QueryParamPlatform = "platform"
	QueryParamLanguage = "language"
)

// LedgerFilename is the attachment name of the XLSX export
const LedgerFilename = "binhi-ledger.xlsx"
