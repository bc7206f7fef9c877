package discord

// Friendly message constants for Discord responses
const (
	MsgAPIUnavailable = "🏛️ **The museum is closed right now.**\nPlease try again in a moment."
	MsgSlowDown       = "⏳ **Whoa there!**\nToo many requests, wait a bit before trying again."
	MsgGenericError   = "❌ Something went wrong."
	MsgNoCrops        = "No seeds match that search."
	MsgAdoptTimeout   = "⏳ Your adoption is still processing. Check `/profile` in a minute."
)

// Embed footers and colours
const (
	FooterMuseum = "Binhi Heritage Museum"

	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorWarning = 0xf39c12
	ColorFailure = 0xe74c3c
	ColorGold    = 0xFFD700
)

// Log messages
const (
	LogMsgBotRunning        = "Discord bot is now running"
	LogMsgBotReady          = "Bot is ready"
	LogMsgCommandsUnchanged = "Commands unchanged, skipping registration"
	LogMsgCommandsUpdated   = "Commands updated"
	LogMsgDeferFailed       = "Failed to send deferred response"
	LogMsgEditFailed        = "Failed to edit interaction response"
	LogMsgSendFailed        = "Failed to send response"
	LogMsgCommandFailed     = "Command failed"
	LogMsgHealthServerStart = "Starting Discord health server"
	LogMsgHealthServerFail  = "Discord health server failed"

	LogMsgStreamConnected    = "Event stream connected"
	LogMsgStreamStopped      = "Event stream stopped"
	LogMsgStreamDropped      = "Event stream dropped, reconnecting"
	LogMsgStreamBadEvent     = "Skipping malformed stream event"
	LogMsgStreamHandlerError = "Stream handler failed"
	LogMsgAnnounceFailed     = "Failed to post channel announcement"
)
