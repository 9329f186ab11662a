package pushover

// Priority controls how a notification is delivered.
// See https://pushover.net/api#priority.
type Priority int

const (
	// PriorityLowest generates no notification or alert.
	PriorityLowest Priority = -2
	// PriorityLow always sends as a quiet notification.
	PriorityLow Priority = -1
	// PriorityNormal is the API default.
	PriorityNormal Priority = 0
	// PriorityHigh bypasses the user's quiet hours.
	PriorityHigh Priority = 1
	// PriorityEmergency repeats until acknowledged and carries [Emergency] options.
	PriorityEmergency Priority = 2
)

const (
	// MinRetry is the shortest interval, in seconds, between emergency retries.
	MinRetry = 30
	// MinExpire and MaxExpire bound how long, in seconds, emergency retries continue.
	MinExpire = 60
	MaxExpire = 10800

	defaultRetry  = MinRetry
	defaultExpire = MaxExpire
)

// Valid reports whether p is one of the priorities the API accepts.
func (p Priority) Valid() bool {
	return p >= PriorityLowest && p <= PriorityEmergency
}

// Emergency holds the options that only exist for [PriorityEmergency].
// A [Message] carries a non-nil Emergency exactly when its priority is
// PriorityEmergency.
type Emergency struct {
	// Retry is how often, in seconds, the notification is repeated.
	Retry int
	// Expire is how long, in seconds, the notification keeps repeating.
	Expire int
}

func normalizePriority(p Priority) Priority {
	if !p.Valid() {
		return PriorityNormal
	}
	return p
}

func clampRetry(secs int) int {
	if secs < MinRetry {
		return MinRetry
	}
	return secs
}

func clampExpire(secs int) int {
	switch {
	case secs < MinExpire:
		return MinExpire
	case secs > MaxExpire:
		return MaxExpire
	default:
		return secs
	}
}
