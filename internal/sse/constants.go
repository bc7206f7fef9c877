package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 50
	ClientChannelBuffer = 10
	// ReplayBufferSize is how many recent events a reconnecting client can catch up on
	ReplayBufferSize = 128
)

// DefaultKeepaliveInterval is how often idle streams get a keepalive frame
const DefaultKeepaliveInterval = 30 * time.Second

// Stream-only event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Request inputs accepted by the stream handler
const (
	QueryParamTypes   = "types"
	QueryParamUser    = "user"
	HeaderLastEventID = "Last-Event-ID"
)

// Log messages
const (
	LogMsgClientConnected    = "Event stream client connected"
	LogMsgClientDisconnected = "Event stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting event to stream clients"
	LogMsgEventDropped       = "Stream broadcast buffer full, dropping event"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgSubscribed         = "Event stream bridged to bus"
	LogMsgReplayed           = "Replayed buffered events to resuming client"
)
