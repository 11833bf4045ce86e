package notice

// Level is the severity of a message shown to the user.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a non-blocking message produced by a user action.
type Notice struct {
	Level Level
	Text  string
}

// Info returns an info-level notice.
func Info(text string) Notice { return Notice{Level: LevelInfo, Text: text} }

// Success returns a success-level notice.
func Success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }

// Warning returns a warning-level notice.
func Warning(text string) Notice { return Notice{Level: LevelWarning, Text: text} }

// Error returns an error-level notice.
func Error(text string) Notice { return Notice{Level: LevelError, Text: text} }

// IsZero reports whether n carries no message.
func (n Notice) IsZero() bool {
	return n.Text == ""
}
