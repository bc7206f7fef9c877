package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgCropNotFound       = "crop not found"
	ErrMsgCropAlreadyAdopted = "crop already adopted"

	// Profile errors
	ErrMsgProfileNotFound = "profile not found"
	ErrMsgUnknownWallet   = "unknown wallet provider"
	ErrMsgUnknownSection  = "unknown museum section"
	ErrMsgUnknownPlatform = "unknown share platform"

	// Checkout errors
	ErrMsgSessionNotFound       = "checkout session not found"
	ErrMsgInvalidTransition     = "invalid checkout transition"
	ErrMsgInvalidPaymentMethod  = "invalid payment method"
	ErrMsgWalletRequired        = "crypto payment requires a connected wallet"
	ErrMsgTransactionNotFound   = "transaction not found"
	ErrMsgCheckoutAlreadyActive = "a checkout for this crop is already in progress"

	// Quest errors
	ErrMsgProvinceNotFound = "province not found"
	ErrMsgQuestCompleted   = "quest already completed"
	ErrMsgInvalidAnswer    = "answer option out of range"

	// Guide errors
	ErrMsgGuideEntryNotFound = "no guide entry for crop"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCropNotFound       = errors.New(ErrMsgCropNotFound)
	ErrCropAlreadyAdopted = errors.New(ErrMsgCropAlreadyAdopted)

	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrUnknownWallet   = errors.New(ErrMsgUnknownWallet)
	ErrUnknownSection  = errors.New(ErrMsgUnknownSection)
	ErrUnknownPlatform = errors.New(ErrMsgUnknownPlatform)

	ErrSessionNotFound       = errors.New(ErrMsgSessionNotFound)
	ErrInvalidTransition     = errors.New(ErrMsgInvalidTransition)
	ErrInvalidPaymentMethod  = errors.New(ErrMsgInvalidPaymentMethod)
	ErrWalletRequired        = errors.New(ErrMsgWalletRequired)
	ErrTransactionNotFound   = errors.New(ErrMsgTransactionNotFound)
	ErrCheckoutAlreadyActive = errors.New(ErrMsgCheckoutAlreadyActive)

	ErrProvinceNotFound = errors.New(ErrMsgProvinceNotFound)
	ErrQuestCompleted   = errors.New(ErrMsgQuestCompleted)
	ErrInvalidAnswer    = errors.New(ErrMsgInvalidAnswer)

	ErrGuideEntryNotFound = errors.New(ErrMsgGuideEntryNotFound)

	ErrDatabase = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
