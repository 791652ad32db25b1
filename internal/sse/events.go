package sse

// Stream event type constants
const (
	EventRoll           = "roll"
	EventHold           = "hold"
	EventNewGame        = "new-game"
	EventBoardUpdate    = "board-update"
	EventControlsUpdate = "controls-update"
	EventTallyUpdate    = "tally-update"
	EventFairness       = "fairness"
	EventNavRedirect    = "nav-redirect"
)
