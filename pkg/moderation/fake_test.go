package moderation

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// fakeClock lets tests fire timers manually. After registers a waiter
// synchronously, so scheduling before fire is race-free.
type fakeClock struct {
	mu      sync.Mutex
	waiters []chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{}
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()
	return ch
}

// fire releases every registered waiter, simulating all deadlines elapsing.
func (c *fakeClock) fire() {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, ch := range waiters {
		ch <- time.Now()
	}
}

// fakeClient is an in-memory CommunityClient recording every call. The ops
// slice preserves cross-method call ordering.
type fakeClient struct {
	mu sync.Mutex

	guildName string
	members   map[string]*Member
	users     map[string]*User
	bansList  []BanEntry
	roles     map[string]*Role

	dmErr         error
	kickErr       error
	banErr        error
	unbanErr      error
	listBansErr   error
	addRoleErr    error
	removeRoleErr error
	deleteErr     error
	sendErr       error

	ops           []string
	kicked        []string
	banned        []string
	unbanned      []string
	rolesAdded    []string
	rolesRemoved  []string
	dms           []string
	deleteCounts  []int
	deletedMsgs   []string
	channelMsgs   []string
	nextMessageID int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		guildName: "Test Guild",
		members:   make(map[string]*Member),
		users:     make(map[string]*User),
		roles:     make(map[string]*Role),
	}
}

func (f *fakeClient) addMember(id, username string, roleIDs ...string) *Member {
	m := &Member{User: User{ID: id, Username: username, Discriminator: "0"}, RoleIDs: roleIDs}
	f.members[id] = m
	return m
}

func (f *fakeClient) record(op string) {
	f.ops = append(f.ops, op)
}

func (f *fakeClient) GuildName(string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guildName, nil
}

func (f *fakeClient) ResolveMember(_, memberID string) (*Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberID]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (f *fakeClient) FetchUserByID(userID string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeClient) KickMember(_, userID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.kickErr != nil {
		return f.kickErr
	}
	f.record("kick:" + userID)
	f.kicked = append(f.kicked, userID)
	return nil
}

func (f *fakeClient) BanUser(_, userID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.banErr != nil {
		return f.banErr
	}
	f.record("ban:" + userID)
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeClient) UnbanUser(_, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unbanErr != nil {
		return f.unbanErr
	}
	f.record("unban:" + userID)
	f.unbanned = append(f.unbanned, userID)
	return nil
}

func (f *fakeClient) ListBans(string) ([]BanEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listBansErr != nil {
		return nil, f.listBansErr
	}
	return f.bansList, nil
}

func (f *fakeClient) ResolveRoleByName(_, name string) (*Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[name]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (f *fakeClient) AddRole(_, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addRoleErr != nil {
		return f.addRoleErr
	}
	f.record("addrole:" + userID)
	f.rolesAdded = append(f.rolesAdded, userID+":"+roleID)
	return nil
}

func (f *fakeClient) RemoveRole(_, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeRoleErr != nil {
		return f.removeRoleErr
	}
	f.record("removerole:" + userID)
	f.rolesRemoved = append(f.rolesRemoved, userID+":"+roleID)
	return nil
}

func (f *fakeClient) DeleteMessages(_ string, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.record("purge:" + strconv.Itoa(count))
	f.deleteCounts = append(f.deleteCounts, count)
	return nil
}

func (f *fakeClient) DeleteMessage(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedMsgs = append(f.deletedMsgs, channelID+"|"+messageID)
	return nil
}

func (f *fakeClient) SendChannelMessage(channelID, content string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.nextMessageID++
	f.channelMsgs = append(f.channelMsgs, channelID+"|"+content)
	return fmt.Sprintf("msg-%d", f.nextMessageID), nil
}

func (f *fakeClient) SendDirectMessage(userID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmErr != nil {
		return f.dmErr
	}
	f.record("dm:" + userID)
	f.dms = append(f.dms, userID+"|"+content)
	return nil
}

func (f *fakeClient) snapshot() fakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeClient{
		ops:          append([]string(nil), f.ops...),
		kicked:       append([]string(nil), f.kicked...),
		banned:       append([]string(nil), f.banned...),
		unbanned:     append([]string(nil), f.unbanned...),
		rolesAdded:   append([]string(nil), f.rolesAdded...),
		rolesRemoved: append([]string(nil), f.rolesRemoved...),
		dms:          append([]string(nil), f.dms...),
		deleteCounts: append([]int(nil), f.deleteCounts...),
		deletedMsgs:  append([]string(nil), f.deletedMsgs...),
		channelMsgs:  append([]string(nil), f.channelMsgs...),
	}
}

// fakeReplier records replies and public sends for one invocation.
type fakeReplier struct {
	mu        sync.Mutex
	replyErr  error
	publicErr error

	replies []string // "ephemeral|content" or "public|content"
	publics []string
	nextID  int
}

func (r *fakeReplier) Reply(content string, ephemeral bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replyErr != nil {
		return r.replyErr
	}
	visibility := "public"
	if ephemeral {
		visibility = "ephemeral"
	}
	r.replies = append(r.replies, visibility+"|"+content)
	return nil
}

func (r *fakeReplier) SendPublic(content string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.publicErr != nil {
		return "", r.publicErr
	}
	r.nextID++
	r.publics = append(r.publics, content)
	return fmt.Sprintf("pub-%d", r.nextID), nil
}

func (r *fakeReplier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.replies...)
	return append(out, r.publics...)
}

func containsSub(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
