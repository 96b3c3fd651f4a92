package moderation

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// interactionReplier answers one slash interaction. The first Reply becomes
// the interaction response; later ones go out as follow-ups, matching how
// interactions may only be responded to once.
type interactionReplier struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate
	channelID   string

	mu        sync.Mutex
	responded bool
}

func (r *interactionReplier) Reply(content string, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	r.mu.Lock()
	first := !r.responded
	r.responded = true
	r.mu.Unlock()

	if first {
		return r.session.InteractionRespond(r.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   flags,
			},
		})
	}

	_, err := r.session.FollowupMessageCreate(r.interaction.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   flags,
	})
	return err
}

func (r *interactionReplier) SendPublic(content string) (string, error) {
	msg, err := r.session.ChannelMessageSend(r.channelID, content)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}
