// Package moderation implements the moderation action pipeline: request
// validation, authorization, execution against the community platform,
// best-effort user notification, timed sanction reversal, and outcome
// reporting.
package moderation

import (
	"fmt"
	"time"
)

// ActionKind identifies a moderation action.
type ActionKind int

const (
	ActionKick ActionKind = iota
	ActionBan
	ActionUnban
	ActionMute
	ActionUnmute
	ActionWarn
	ActionPurge
)

func (k ActionKind) String() string {
	switch k {
	case ActionKick:
		return "kick"
	case ActionBan:
		return "ban"
	case ActionUnban:
		return "unban"
	case ActionMute:
		return "mute"
	case ActionUnmute:
		return "unmute"
	case ActionWarn:
		return "warn"
	case ActionPurge:
		return "purge"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// DefaultReason is used when the issuer supplies none.
const DefaultReason = "No reason provided"

// Purge count bounds, inclusive.
const (
	MinPurgeCount = 1
	MaxPurgeCount = 100
)

// TargetRef identifies the user an action applies to. Exactly one form is
// expected to be populated: a member ID for users resolvable in the guild, a
// raw numeric ID for users outside it, or a legacy name plus discriminator
// pair for unban lookups.
type TargetRef struct {
	MemberID      string
	RawID         string
	Name          string
	Discriminator string
}

// IsZero reports whether no target form is populated.
func (t TargetRef) IsZero() bool {
	return t.MemberID == "" && t.RawID == "" && t.Name == ""
}

// Request is a single validated moderation invocation. It is constructed once
// per invocation and never mutated afterwards.
type Request struct {
	Kind              ActionKind
	GuildID           string
	ChannelID         string
	IssuerID          string
	IssuerPermissions int64
	Target            TargetRef
	Duration          time.Duration
	Reason            string
	Count             int
}

// NewRequest builds a Request, applying the default reason.
func NewRequest(kind ActionKind, guildID, channelID, issuerID string, perms int64) *Request {
	return &Request{
		Kind:              kind,
		GuildID:           guildID,
		ChannelID:         channelID,
		IssuerID:          issuerID,
		IssuerPermissions: perms,
		Reason:            DefaultReason,
	}
}

// usage strings shown when required arguments are missing or out of range.
var usageByKind = map[ActionKind]string{
	ActionKick:   "❌ Usage: `-kick @user [reason]`",
	ActionBan:    "❌ Usage: `-ban @user [reason]`",
	ActionUnban:  "❌ Usage: `-unban name#1234 or ID`",
	ActionMute:   "❌ Usage: `-mute @user [duration] [reason]`",
	ActionUnmute: "❌ Usage: `-unmute @user`",
	ActionWarn:   "❌ Usage: `-warn @user [reason]`",
	ActionPurge:  "❌ Usage: `-purge [1–100]`",
}

// ValidationError reports a malformed or out-of-range argument. It is
// surfaced before execution with a fixed usage message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the request's arguments. It returns a *ValidationError
// describing the problem, or nil.
func (r *Request) Validate() error {
	switch r.Kind {
	case ActionPurge:
		if r.Count < MinPurgeCount || r.Count > MaxPurgeCount {
			return &ValidationError{Message: "⚠️ Please choose a number between 1 and 100."}
		}
	case ActionUnban:
		if r.Target.RawID == "" && (r.Target.Name == "" || r.Target.Discriminator == "") {
			return &ValidationError{Message: usageByKind[ActionUnban]}
		}
	default:
		if r.Target.IsZero() {
			return &ValidationError{Message: usageByKind[r.Kind]}
		}
	}
	if r.GuildID == "" {
		return &ValidationError{Message: "❌ This command can only be used in a server."}
	}
	return nil
}

// Usage returns the usage message for an action kind.
func Usage(kind ActionKind) string {
	return usageByKind[kind]
}
