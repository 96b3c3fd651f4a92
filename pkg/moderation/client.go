package moderation

import "errors"

// Sentinel errors clients use to classify platform failures. Anything not
// matching one of these is treated as a transient transport fault.
var (
	// ErrForbidden means the platform refused the call for permission
	// reasons, such as the bot's role sitting below the target's.
	ErrForbidden = errors.New("moderation: forbidden by platform")

	// ErrNotFound means the referenced user, member, role, or ban entry
	// does not exist.
	ErrNotFound = errors.New("moderation: not found")
)

// User is a platform user, not necessarily a guild member.
type User struct {
	ID            string
	Username      string
	Discriminator string
}

// Mention returns the platform mention string for the user.
func (u User) Mention() string {
	return "<@" + u.ID + ">"
}

// Tag returns the legacy name#discriminator form, or the bare username for
// accounts without a discriminator.
func (u User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// Member is a user resolved within a guild.
type Member struct {
	User    User
	RoleIDs []string
}

// HasRole reports whether the member holds the given role.
func (m *Member) HasRole(roleID string) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Role is a guild role.
type Role struct {
	ID   string
	Name string
}

// BanEntry is one entry of a guild's ban list.
type BanEntry struct {
	User   User
	Reason string
}

// CommunityClient is the surface of the community platform the pipeline
// needs. Implementations classify platform failures with ErrForbidden and
// ErrNotFound; other errors are treated as transient.
type CommunityClient interface {
	GuildName(guildID string) (string, error)
	ResolveMember(guildID, memberID string) (*Member, error)
	FetchUserByID(userID string) (*User, error)

	KickMember(guildID, userID, reason string) error
	BanUser(guildID, userID, reason string) error
	UnbanUser(guildID, userID string) error
	ListBans(guildID string) ([]BanEntry, error)

	ResolveRoleByName(guildID, name string) (*Role, error)
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error

	DeleteMessages(channelID string, count int) error
	DeleteMessage(channelID, messageID string) error
	SendChannelMessage(channelID, content string) (messageID string, err error)
	SendDirectMessage(userID, content string) error
}
