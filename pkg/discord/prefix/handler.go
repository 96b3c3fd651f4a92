// Package prefix implements the text command front end: messages starting
// with the command prefix are parsed into moderation requests and routed
// through the same pipeline as slash commands.
package prefix

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/discord/commands/misc"
	"github.com/small-frappuccino/modcore/pkg/log"
	"github.com/small-frappuccino/modcore/pkg/moderation"
)

// DefaultPrefix is the text command prefix.
const DefaultPrefix = "-"

var actionsByName = map[string]moderation.ActionKind{
	"kick":   moderation.ActionKick,
	"ban":    moderation.ActionBan,
	"unban":  moderation.ActionUnban,
	"mute":   moderation.ActionMute,
	"unmute": moderation.ActionUnmute,
	"warn":   moderation.ActionWarn,
	"purge":  moderation.ActionPurge,
}

// Handler routes prefixed text commands to the moderation pipeline.
type Handler struct {
	service *moderation.Service
	prefix  string

	// CommandChannel resolves a guild's dedicated command channel ID, or
	// "" when text commands are accepted anywhere.
	CommandChannel func(guildID string) string
}

func NewHandler(service *moderation.Service) *Handler {
	return &Handler{service: service, prefix: DefaultPrefix}
}

// HandleMessage is the MessageCreate handler.
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	name, args, ok := SplitCommand(m.Content, h.prefix)
	if !ok {
		return
	}

	switch name {
	case "ping":
		if _, err := s.ChannelMessageSend(m.ChannelID, "🏓 Pong!"); err != nil {
			log.DiscordLogger().Debug("ping reply failed", "error", err)
		}
		return
	case "help":
		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, misc.HelpEmbed(h.prefix)); err != nil {
			log.DiscordLogger().Debug("help reply failed", "error", err)
		}
		return
	}

	kind, known := actionsByName[name]
	if !known {
		return
	}
	if h.CommandChannel != nil {
		if ch := h.CommandChannel(m.GuildID); ch != "" && ch != m.ChannelID {
			return
		}
	}

	perms := h.memberPermissions(s, m)
	req := BuildRequest(kind, m.GuildID, m.ChannelID, m.Author.ID, perms, args)

	// Plain channel messages cannot carry ephemeral replies; everything
	// the pipeline reports lands in the channel.
	inv := &moderation.Invocation{
		GuildID:            m.GuildID,
		ChannelID:          m.ChannelID,
		IssuerID:           m.Author.ID,
		EphemeralSupported: false,
		Replier:            &messageReplier{session: s, channelID: m.ChannelID},
	}

	h.service.Handle(req, inv)
}

func (h *Handler) memberPermissions(s *discordgo.Session, m *discordgo.MessageCreate) int64 {
	perms, err := s.State.MessagePermissions(m.Message)
	if err == nil {
		return perms
	}
	perms, err = s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.DiscordLogger().Debug("permission resolution failed",
			"guild_id", m.GuildID,
			"user_id", m.Author.ID,
			"error", err)
		return 0
	}
	return perms
}

// SplitCommand strips the prefix and splits a message into the command name
// and its arguments. ok is false when the message is not a command.
func SplitCommand(content, prefix string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// BuildRequest assembles a moderation request from text command arguments.
// Missing or malformed arguments leave the request invalid so the pipeline
// answers with the command's usage string.
func BuildRequest(kind moderation.ActionKind, guildID, channelID, issuerID string, perms int64, args []string) *moderation.Request {
	req := moderation.NewRequest(kind, guildID, channelID, issuerID, perms)

	switch kind {
	case moderation.ActionKick, moderation.ActionBan, moderation.ActionWarn:
		if len(args) > 0 {
			req.Target = moderation.ParseUserRef(args[0])
		}
		if len(args) > 1 {
			req.Reason = strings.Join(args[1:], " ")
		}
	case moderation.ActionMute:
		if len(args) > 0 {
			req.Target = moderation.ParseUserRef(args[0])
		}
		rest := args[1:]
		if len(rest) > 0 {
			if seconds, err := strconv.Atoi(rest[0]); err == nil && seconds > 0 {
				req.Duration = time.Duration(seconds) * time.Second
				rest = rest[1:]
			}
		}
		if len(rest) > 0 {
			req.Reason = strings.Join(rest, " ")
		}
	case moderation.ActionUnmute:
		if len(args) > 0 {
			req.Target = moderation.ParseUserRef(args[0])
		}
	case moderation.ActionUnban:
		req.Target = moderation.ParseBanListRef(strings.Join(args, " "))
	case moderation.ActionPurge:
		if len(args) > 0 {
			if amount, err := strconv.Atoi(args[0]); err == nil {
				req.Count = amount
			}
		}
	}

	return req
}

// messageReplier sends everything as plain channel messages.
type messageReplier struct {
	session   *discordgo.Session
	channelID string
}

func (r *messageReplier) Reply(content string, ephemeral bool) error {
	_, err := r.SendPublic(content)
	return err
}

func (r *messageReplier) SendPublic(content string) (string, error) {
	msg, err := r.session.ChannelMessageSend(r.channelID, content)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}
