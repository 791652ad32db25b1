package game

const (
	// WinThreshold is the banked total that ends a match
	WinThreshold = 100

	// BustFace is the die value that wipes the running score and passes the turn
	BustFace = 1

	// StreamBufferSize is the buffer size for stream message channels
	StreamBufferSize = 10

	// StreamTimeoutSeconds is the timeout for sending messages to stream clients
	StreamTimeoutSeconds = 1

	// TableCodeLength is the length of generated table codes
	TableCodeLength = 6

	// TableCodeChars are the characters used for generating table codes (excluding ambiguous chars)
	TableCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)
