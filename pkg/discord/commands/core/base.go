package core

import (
	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/files"
)

// ContextBuilder creates contexts for command execution.
type ContextBuilder struct {
	session       *discordgo.Session
	configManager *files.ConfigManager
	checker       *PermissionChecker
}

func NewContextBuilder(session *discordgo.Session, configManager *files.ConfigManager, checker *PermissionChecker) *ContextBuilder {
	return &ContextBuilder{
		session:       session,
		configManager: configManager,
		checker:       checker,
	}
}

// BuildContext assembles the full context for one interaction.
func (cb *ContextBuilder) BuildContext(i *discordgo.InteractionCreate) *Context {
	userID := extractUserID(i)
	guildID := i.GuildID

	var guildConfig *files.GuildConfig
	if guildID != "" {
		guildConfig = cb.configManager.GuildConfig(guildID)
	}

	var perms int64
	if i.Member != nil {
		perms = i.Member.Permissions
	}

	isOwner := false
	if guildID != "" {
		isOwner = cb.checker.IsOwner(guildID, userID)
	}

	return &Context{
		Session:     cb.session,
		Interaction: i,
		Config:      cb.configManager,
		GuildID:     guildID,
		ChannelID:   i.ChannelID,
		UserID:      userID,
		Permissions: perms,
		IsOwner:     isOwner,
		GuildConfig: guildConfig,
	}
}

// extractUserID pulls the issuer's ID from either guild or DM interactions.
func extractUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// IsSlashCommandInteraction checks whether the interaction is a slash command.
func IsSlashCommandInteraction(i *discordgo.InteractionCreate) bool {
	return i.Type == discordgo.InteractionApplicationCommand
}
