package session

// op names a controller call issued by the screen.
type op int

const (
	opStart op = iota
	opNext
	opSubmit
)

func (o op) String() string {
	switch o {
	case opStart:
		return "start"
	case opNext:
		return "next"
	case opSubmit:
		return "submit"
	default:
		return "unknown"
	}
}

// controllerDoneMsg is sent when a blocking controller call returns.
type controllerDoneMsg struct {
	Op  op
	Err error
}
