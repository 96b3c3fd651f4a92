// Package session creates and connects the Discord gateway session.
package session

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/errutil"
	"github.com/small-frappuccino/modcore/pkg/log"
)

// Intents covers everything the bot needs: guild and member state for
// moderation targets, message events for the text prefix front end, and
// moderation events for ban list changes.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentMessageContent |
	discordgo.IntentGuildModeration

// NewDiscordSession creates a session and opens the gateway connection.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}

	var s *discordgo.Session
	if err := errutil.HandleDiscordError("create session", func() error {
		var sessionErr error
		s, sessionErr = discordgo.New("Bot " + token)
		return sessionErr
	}); err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	s.Identify.Intents = Intents
	s.StateEnabled = true

	log.DiscordLogger().Info("connecting to Discord")
	if err := errutil.HandleDiscordError("connect", s.Open); err != nil {
		return nil, fmt.Errorf("failed to connect to Discord: %w", err)
	}

	log.DiscordLogger().Info("connected to Discord",
		"user_id", s.State.User.ID,
		"username", s.State.User.Username)
	return s, nil
}
