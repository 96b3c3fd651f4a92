package moderation

import "github.com/small-frappuccino/modcore/pkg/log"

// NotifyResult is the outcome of a direct-message attempt.
type NotifyResult int

const (
	// Delivered means the message reached the user's DM channel.
	Delivered NotifyResult = iota
	// Suppressed means delivery failed for any reason. Suppression never
	// propagates as a pipeline error.
	Suppressed
)

// Notifier delivers best-effort direct messages to sanctioned users.
type Notifier struct {
	client CommunityClient
}

// NewNotifier creates a Notifier over the given client.
func NewNotifier(client CommunityClient) *Notifier {
	return &Notifier{client: client}
}

// Notify attempts a direct message. Failures are swallowed into Suppressed
// and logged; the caller's own outcome is never affected.
func (n *Notifier) Notify(userID, content string) NotifyResult {
	if err := n.client.SendDirectMessage(userID, content); err != nil {
		log.DiscordLogger().Debug("direct message suppressed",
			"user_id", userID,
			"error", err)
		return Suppressed
	}
	return Delivered
}
