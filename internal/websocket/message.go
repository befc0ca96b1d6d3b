package websocket

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewStatsMessage wraps a stats snapshot for broadcast to dashboards.
func NewStatsMessage(stats interface{}) Message {
	return Message{Action: "stats_update", Payload: stats}
}
