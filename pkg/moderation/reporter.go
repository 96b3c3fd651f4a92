package moderation

import (
	"github.com/small-frappuccino/modcore/pkg/log"
)

// Replier is the reply surface of one invocation. Reply answers the issuer
// through the invocation's own transport; SendPublic posts a plain channel
// message and returns its ID.
type Replier interface {
	Reply(content string, ephemeral bool) error
	SendPublic(content string) (messageID string, err error)
}

// Invocation carries the context an action was issued from.
type Invocation struct {
	GuildID            string
	ChannelID          string
	IssuerID           string
	EphemeralSupported bool
	Replier            Replier
}

// Reporter delivers outcome messages back to the issuer. Ephemeral delivery
// is used when requested and supported; any delivery failure falls back to a
// plain public message, and a failure of that too drops the report with only
// a diagnostic. Reporting failure is never escalated to the issuer.
type Reporter struct{}

// NewReporter creates a Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report sends content to the invocation, honoring the ephemeral preference
// where the transport supports it. It returns the public message ID when the
// message was posted publicly, or "" otherwise.
func (r *Reporter) Report(inv *Invocation, content string, ephemeral bool) string {
	if inv == nil || inv.Replier == nil {
		return ""
	}

	if ephemeral && inv.EphemeralSupported {
		if err := inv.Replier.Reply(content, true); err == nil {
			return ""
		} else {
			log.DiscordLogger().Debug("ephemeral reply failed, falling back to public",
				"channel_id", inv.ChannelID,
				"error", err)
		}
	} else if inv.EphemeralSupported {
		// Structured invocations must be answered through their own
		// transport even for public messages.
		if err := inv.Replier.Reply(content, false); err == nil {
			return ""
		} else {
			log.DiscordLogger().Debug("reply failed, falling back to public send",
				"channel_id", inv.ChannelID,
				"error", err)
		}
	}

	id, err := inv.Replier.SendPublic(content)
	if err != nil {
		log.DiscordLogger().Warn("report dropped",
			"channel_id", inv.ChannelID,
			"error", err)
		return ""
	}
	return id
}
