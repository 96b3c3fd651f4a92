package moderation

import (
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// DiscordClient implements CommunityClient over a discordgo session.
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps a discordgo session.
func NewDiscordClient(session *discordgo.Session) *DiscordClient {
	return &DiscordClient{session: session}
}

// classify maps discordgo REST errors onto the pipeline's sentinel errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if restErr, ok := err.(*discordgo.RESTError); ok && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrForbidden, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}
	return err
}

func toUser(u *discordgo.User) User {
	if u == nil {
		return User{}
	}
	return User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
	}
}

func (c *DiscordClient) GuildName(guildID string) (string, error) {
	if g, err := c.session.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name, nil
	}
	g, err := c.session.Guild(guildID)
	if err != nil {
		return "", classify(err)
	}
	return g.Name, nil
}

func (c *DiscordClient) ResolveMember(guildID, memberID string) (*Member, error) {
	if memberID == "" {
		return nil, ErrNotFound
	}
	m, err := c.session.State.Member(guildID, memberID)
	if err != nil {
		m, err = c.session.GuildMember(guildID, memberID)
		if err != nil {
			return nil, classify(err)
		}
	}
	return &Member{User: toUser(m.User), RoleIDs: m.Roles}, nil
}

func (c *DiscordClient) FetchUserByID(userID string) (*User, error) {
	u, err := c.session.User(userID)
	if err != nil {
		return nil, classify(err)
	}
	user := toUser(u)
	return &user, nil
}

func (c *DiscordClient) KickMember(guildID, userID, reason string) error {
	return classify(c.session.GuildMemberDeleteWithReason(guildID, userID, reason))
}

func (c *DiscordClient) BanUser(guildID, userID, reason string) error {
	return classify(c.session.GuildBanCreateWithReason(guildID, userID, reason, 0))
}

func (c *DiscordClient) UnbanUser(guildID, userID string) error {
	return classify(c.session.GuildBanDelete(guildID, userID))
}

func (c *DiscordClient) ListBans(guildID string) ([]BanEntry, error) {
	// Bans arrive paginated; materialize the whole list so callers can
	// scan it for legacy name matches.
	var entries []BanEntry
	after := ""
	for {
		page, err := c.session.GuildBans(guildID, banPageSize, "", after)
		if err != nil {
			return nil, classify(err)
		}
		for _, b := range page {
			entries = append(entries, BanEntry{User: toUser(b.User), Reason: b.Reason})
		}
		if len(page) < banPageSize {
			return entries, nil
		}
		after = page[len(page)-1].User.ID
	}
}

const banPageSize = 1000

func (c *DiscordClient) ResolveRoleByName(guildID, name string) (*Role, error) {
	roles, err := c.session.GuildRoles(guildID)
	if err != nil {
		return nil, classify(err)
	}
	for _, r := range roles {
		if r.Name == name {
			return &Role{ID: r.ID, Name: r.Name}, nil
		}
	}
	return nil, ErrNotFound
}

func (c *DiscordClient) AddRole(guildID, userID, roleID string) error {
	return classify(c.session.GuildMemberRoleAdd(guildID, userID, roleID))
}

func (c *DiscordClient) RemoveRole(guildID, userID, roleID string) error {
	return classify(c.session.GuildMemberRoleRemove(guildID, userID, roleID))
}

func (c *DiscordClient) DeleteMessages(channelID string, count int) error {
	// A single fetch returns at most 100 messages, while count can be 101
	// when the triggering message itself is included.
	before := ""
	for count > 0 {
		limit := count
		if limit > 100 {
			limit = 100
		}
		msgs, err := c.session.ChannelMessages(channelID, limit, before, "", "")
		if err != nil {
			return classify(err)
		}
		if len(msgs) == 0 {
			return nil
		}

		ids := make([]string, 0, len(msgs))
		for _, m := range msgs {
			ids = append(ids, m.ID)
		}
		if len(ids) == 1 {
			if err := c.session.ChannelMessageDelete(channelID, ids[0]); err != nil {
				return classify(err)
			}
		} else if err := c.session.ChannelMessagesBulkDelete(channelID, ids); err != nil {
			return classify(err)
		}

		before = msgs[len(msgs)-1].ID
		count -= len(msgs)
	}
	return nil
}

func (c *DiscordClient) DeleteMessage(channelID, messageID string) error {
	return classify(c.session.ChannelMessageDelete(channelID, messageID))
}

func (c *DiscordClient) SendChannelMessage(channelID, content string) (string, error) {
	msg, err := c.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", classify(err)
	}
	return msg.ID, nil
}

func (c *DiscordClient) SendDirectMessage(userID, content string) error {
	ch, err := c.session.UserChannelCreate(userID)
	if err != nil {
		return classify(err)
	}
	_, err = c.session.ChannelMessageSend(ch.ID, content)
	return classify(err)
}
