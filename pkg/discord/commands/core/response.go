package core

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/theme"
)

// ResponseType selects a standard message prefix and embed color.
type ResponseType int

const (
	ResponseSuccess ResponseType = iota
	ResponseError
	ResponseWarning
	ResponseInfo
)

// ResponseManager answers interactions. It tracks whether the initial
// response was already sent so later messages for the same interaction go
// out as follow-ups.
type ResponseManager struct {
	session *discordgo.Session

	mu        sync.Mutex
	responded map[string]bool
}

func NewResponseManager(session *discordgo.Session) *ResponseManager {
	return &ResponseManager{
		session:   session,
		responded: make(map[string]bool),
	}
}

// Respond sends content for the interaction, as the initial response or a
// follow-up depending on what was already sent.
func (rm *ResponseManager) Respond(i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	rm.mu.Lock()
	first := !rm.responded[i.ID]
	rm.responded[i.ID] = true
	rm.mu.Unlock()

	if first {
		err := rm.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   flags,
			},
		})
		if err == nil {
			return nil
		}
		// The initial response can race a gateway retry; fall through to
		// a follow-up attempt.
	}

	_, err := rm.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   flags,
	})
	return err
}

// RespondEmbed sends an embed response.
func (rm *ResponseManager) RespondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	rm.mu.Lock()
	first := !rm.responded[i.ID]
	rm.responded[i.ID] = true
	rm.mu.Unlock()

	if first {
		return rm.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{embed},
				Flags:  flags,
			},
		})
	}
	_, err := rm.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  flags,
	})
	return err
}

// Forget drops response tracking for a finished interaction.
func (rm *ResponseManager) Forget(i *discordgo.InteractionCreate) {
	rm.mu.Lock()
	delete(rm.responded, i.ID)
	rm.mu.Unlock()
}

// Success sends a prefixed success response.
func (rm *ResponseManager) Success(i *discordgo.InteractionCreate, message string) error {
	return rm.Respond(i, formatMessage(message, ResponseSuccess), false)
}

// Error sends a prefixed error response.
func (rm *ResponseManager) Error(i *discordgo.InteractionCreate, message string) error {
	return rm.Respond(i, formatMessage(message, ResponseError), false)
}

// Warning sends a prefixed warning response.
func (rm *ResponseManager) Warning(i *discordgo.InteractionCreate, message string) error {
	return rm.Respond(i, formatMessage(message, ResponseWarning), false)
}

// Ephemeral sends a prefixed informational response visible only to the
// issuer.
func (rm *ResponseManager) Ephemeral(i *discordgo.InteractionCreate, message string) error {
	return rm.Respond(i, formatMessage(message, ResponseInfo), true)
}

func formatMessage(message string, responseType ResponseType) string {
	switch responseType {
	case ResponseSuccess:
		return "✅ " + message
	case ResponseError:
		return "❌ " + message
	case ResponseWarning:
		return "⚠️ " + message
	case ResponseInfo:
		return "ℹ️ " + message
	default:
		return message
	}
}

// EmbedBuilder builds standard embeds with theme colors.
type EmbedBuilder struct{}

func (EmbedBuilder) Info(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       theme.Info(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func (EmbedBuilder) Success(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       theme.Success(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}
