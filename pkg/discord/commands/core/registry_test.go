package core

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

type testCommand struct {
	name            string
	requiresGuild   bool
	requiresManager bool
	handler         func(*Context) error
}

func (tc testCommand) Name() string        { return tc.name }
func (tc testCommand) Description() string { return tc.name }
func (tc testCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}
func (tc testCommand) Handle(ctx *Context) error {
	if tc.handler != nil {
		return tc.handler(ctx)
	}
	return nil
}
func (tc testCommand) RequiresGuild() bool       { return tc.requiresGuild }
func (tc testCommand) RequiresManagerRole() bool { return tc.requiresManager }

func TestRegistryRegisterAndLookup(t *testing.T) {
	t.Parallel()

	registry := NewCommandRegistry()
	registry.Register(testCommand{name: "ping"})
	registry.Register(testCommand{name: "help"})

	if _, ok := registry.GetCommand("ping"); !ok {
		t.Fatal("expected ping to be registered")
	}
	if _, ok := registry.GetCommand("missing"); ok {
		t.Fatal("expected missing command to be absent")
	}
	if got := len(registry.GetAllCommands()); got != 2 {
		t.Fatalf("expected 2 registered commands, got %d", got)
	}
}

func TestRegistryReplacesCommandWithSameName(t *testing.T) {
	t.Parallel()

	registry := NewCommandRegistry()
	registry.Register(testCommand{name: "ping", requiresGuild: false})
	registry.Register(testCommand{name: "ping", requiresGuild: true})

	cmd, ok := registry.GetCommand("ping")
	if !ok {
		t.Fatal("expected ping to be registered")
	}
	if !cmd.RequiresGuild() {
		t.Fatal("expected the later registration to win")
	}
	if got := len(registry.GetAllCommands()); got != 1 {
		t.Fatalf("expected 1 registered command, got %d", got)
	}
}

func TestCompareCommands(t *testing.T) {
	t.Parallel()

	opts := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "member",
			Description: "Member to act on",
			Required:    true,
		},
	}

	a := &discordgo.ApplicationCommand{Name: "kick", Description: "Kick a member", Options: opts}
	b := &discordgo.ApplicationCommand{Name: "kick", Description: "Kick a member", Options: opts}
	if !CompareCommands(a, b) {
		t.Fatal("expected identical commands to compare equal")
	}

	c := &discordgo.ApplicationCommand{Name: "kick", Description: "Kick a member"}
	if CompareCommands(a, c) {
		t.Fatal("expected commands with different options to compare unequal")
	}

	d := &discordgo.ApplicationCommand{Name: "kick", Description: "Remove a member", Options: opts}
	if CompareCommands(a, d) {
		t.Fatal("expected commands with different descriptions to compare unequal")
	}
}

func TestOptionExtractor(t *testing.T) {
	t.Parallel()

	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "reason", Type: discordgo.ApplicationCommandOptionString, Value: "  spam  "},
		{Name: "amount", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(25)},
		{Name: "member", Type: discordgo.ApplicationCommandOptionUser, Value: "user-1"},
		{Name: "mod_log_channel", Type: discordgo.ApplicationCommandOptionChannel, Value: "chan-1"},
	}
	opts := NewOptionExtractor(options)

	if got := opts.String("reason"); got != "spam" {
		t.Fatalf("expected trimmed string option, got %q", got)
	}
	if got := opts.Int("amount"); got != 25 {
		t.Fatalf("expected amount 25, got %d", got)
	}
	if got := opts.User("member"); got != "user-1" {
		t.Fatalf("expected user-1, got %q", got)
	}
	if got := opts.Channel("mod_log_channel"); got != "chan-1" {
		t.Fatalf("expected chan-1, got %q", got)
	}
	if opts.HasOption("missing") {
		t.Fatal("expected missing option to be absent")
	}
	if got := opts.String("missing"); got != "" {
		t.Fatalf("expected empty string for missing option, got %q", got)
	}

	if _, err := opts.StringRequired("missing"); err == nil {
		t.Fatal("expected error for missing required option")
	}
	if v, err := opts.StringRequired("reason"); err != nil || v != "spam" {
		t.Fatalf("expected required option to resolve, got %q, %v", v, err)
	}
}
