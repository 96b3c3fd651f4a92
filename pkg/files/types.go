// Package files manages the bot's persisted configuration files.
package files

// GuildConfig holds the per-guild settings used by the moderation pipeline.
type GuildConfig struct {
	GuildID          string   `json:"guild_id"`
	CommandChannelID string   `json:"command_channel_id,omitempty"`
	ModLogChannelID  string   `json:"mod_log_channel_id,omitempty"`
	AllowedRoles     []string `json:"allowed_roles,omitempty"`
	MutedRoleName    string   `json:"muted_role_name,omitempty"`
}

// DefaultMutedRoleName is used when a guild has not configured one.
const DefaultMutedRoleName = "Muted"

// EffectiveMutedRoleName returns the configured muted role name or the
// default.
func (g *GuildConfig) EffectiveMutedRoleName() string {
	if g == nil || g.MutedRoleName == "" {
		return DefaultMutedRoleName
	}
	return g.MutedRoleName
}

// BotConfig is the root of the settings file.
type BotConfig struct {
	Guilds []GuildConfig `json:"guilds"`
}
