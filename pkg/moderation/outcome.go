package moderation

// Status classifies an action's result.
type Status int

const (
	// StatusSuccess means the platform call succeeded, including no-op
	// variants like unmuting an already-unmuted member.
	StatusSuccess Status = iota
	// StatusDenied means the platform refused the call or a required
	// guild resource (such as the muted role) is missing.
	StatusDenied
	// StatusNotFound means the target could not be located.
	StatusNotFound
	// StatusTransient means a transport or network fault. Not retried.
	StatusTransient
)

// Outcome is the single result of one executed action. Detail is the
// user-facing message; Notes carry secondary warnings such as an
// undeliverable direct message. Exactly one Outcome is produced per
// execution and consumed by exactly one report.
type Outcome struct {
	Status Status
	Detail string
	Notes  []string
}

// Succeeded reports whether the action itself succeeded.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

func success(detail string, notes ...string) Outcome {
	return Outcome{Status: StatusSuccess, Detail: detail, Notes: notes}
}

func denied(detail string) Outcome {
	return Outcome{Status: StatusDenied, Detail: detail}
}

func notFound(detail string) Outcome {
	return Outcome{Status: StatusNotFound, Detail: detail}
}

func transient(detail string) Outcome {
	return Outcome{Status: StatusTransient, Detail: detail}
}
