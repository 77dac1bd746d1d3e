package ctf

// Event is one entry of the match trace. T is the tick the event belongs to.
type Event struct {
	T       int            `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventReset         = "Reset"
	EventMove          = "Move"
	EventScore         = "Score"
	EventCapture       = "Capture"
	EventEliminate     = "Eliminate"
	EventAllEliminated = "AllEliminated"
	EventTimeout       = "Timeout"
)
