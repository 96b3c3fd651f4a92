package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/small-frappuccino/modcore/pkg/control"
	"github.com/small-frappuccino/modcore/pkg/discord/commands/config"
	"github.com/small-frappuccino/modcore/pkg/discord/commands/core"
	"github.com/small-frappuccino/modcore/pkg/discord/commands/misc"
	modcommands "github.com/small-frappuccino/modcore/pkg/discord/commands/moderation"
	"github.com/small-frappuccino/modcore/pkg/discord/prefix"
	"github.com/small-frappuccino/modcore/pkg/discord/session"
	"github.com/small-frappuccino/modcore/pkg/errutil"
	"github.com/small-frappuccino/modcore/pkg/files"
	"github.com/small-frappuccino/modcore/pkg/log"
	"github.com/small-frappuccino/modcore/pkg/moderation"
	"github.com/small-frappuccino/modcore/pkg/storage"
	"github.com/small-frappuccino/modcore/pkg/util"
)

// heartbeatInterval is how often the liveness timestamp is persisted.
const heartbeatInterval = time.Minute

// Run bootstraps the bot and blocks until shutdown.
// appName affects config/state/log paths; tokenEnv is the environment variable
// containing the bot token. The tokenEnv is read from the current process
// environment first; if empty, a fallback $HOME/.local/bin/.env file is loaded
// and the variable re-checked.
func Run(appName, tokenEnv string) error {
	started := time.Now()

	// App name first (affects paths)
	util.SetAppName(appName)
	if util.AppVersion == "" {
		util.SetAppVersion(Version)
	}

	// Load env (with $HOME/.local/bin fallback)
	token, loadErr := util.LoadEnvWithLocalBinFallback(tokenEnv)

	// Logger first so subsequent steps can log meaningfully
	if err := log.SetupLogger(); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	defer log.GlobalLogger.Sync()

	if loadErr != nil {
		log.ApplicationLogger().Warn(fmt.Sprintf("Warning: %v", loadErr))
	}

	// Global error handler
	errutil.InitializeGlobalErrorHandler()

	log.ApplicationLogger().Info(fmt.Sprintf("🚀 Starting %s...", appName))

	// Token must be present
	if token == "" {
		return fmt.Errorf("%s not set in environment or .env file", tokenEnv)
	}

	// Discord session
	log.DiscordLogger().Info("🔑 Attempting to authenticate with Discord API...")
	discordSession, err := session.NewDiscordSession(token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	if discordSession.State == nil || discordSession.State.User == nil {
		return fmt.Errorf("discord session state not properly initialized")
	}
	util.SetBotName(discordSession.State.User.Username)

	// Minimal on-disk structure
	if err := util.EnsureDataDirs(); err != nil {
		return fmt.Errorf("create data directories: %w", err)
	}

	// Config manager
	configManager := files.NewConfigManager()
	if err := configManager.EnsureConfigFiles(); err != nil {
		return fmt.Errorf("ensure config files: %w", err)
	}
	if err := configManager.LoadConfig(); err != nil {
		log.ErrorLoggerRaw().Error(fmt.Sprintf("Failed to load settings file: %v", err))
	}

	// SQLite store (support MODCORE_STATE_DB_PATH override)
	dbPath := util.GetStateDBPath()
	if v := os.Getenv("MODCORE_STATE_DB_PATH"); v != "" {
		dbPath = v
	}
	store := storage.NewStoreWithPath(dbPath)
	if err := store.Init(); err != nil {
		return fmt.Errorf("initialize SQLite store: %w", err)
	}

	// Moderation pipeline
	client := moderation.NewDiscordClient(discordSession)
	executor := moderation.NewExecutor(client, moderation.NewNotifier(client), moderation.NewScheduler(nil))
	executor.MutedRoleName = func(guildID string) string {
		return configManager.GuildConfig(guildID).EffectiveMutedRoleName()
	}
	pipeline := moderation.NewService(client, executor, moderation.NewReporter(), nil)
	pipeline.ModLogChannel = func(guildID string) string {
		if cfg := configManager.GuildConfig(guildID); cfg != nil {
			return cfg.ModLogChannelID
		}
		return ""
	}

	// Slash commands
	commandManager := core.NewCommandManager(discordSession, configManager)
	router := commandManager.GetRouter()
	router.GetPermissionChecker().SetStore(store)
	modcommands.NewCommands(pipeline).Register(router)
	misc.NewCommands().Register(router)
	config.NewCommands().Register(router)
	if err := commandManager.SetupCommands(); err != nil {
		return fmt.Errorf("configure slash commands: %w", err)
	}
	log.ApplicationLogger().Info("🔗 Slash commands sync completed")

	// Legacy prefix commands
	prefixHandler := prefix.NewHandler(pipeline)
	prefixHandler.CommandChannel = func(guildID string) string {
		if cfg := configManager.GuildConfig(guildID); cfg != nil {
			return cfg.CommandChannelID
		}
		return ""
	}
	discordSession.AddHandler(prefixHandler.HandleMessage)

	// Control server
	controlAddr := util.EnvString("MODCORE_CONTROL_ADDR", control.DefaultAddr)
	controlServer := control.NewServer(controlAddr, discordSession, store)
	if err := controlServer.Start(); err != nil {
		return fmt.Errorf("start control server: %w", err)
	}

	// Heartbeat loop
	heartbeatStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		for {
			if err := store.SetHeartbeat(time.Now()); err != nil {
				log.ApplicationLogger().Warn(fmt.Sprintf("Failed to persist heartbeat: %v", err))
			}
			select {
			case <-ticker.C:
			case <-heartbeatStop:
				return
			}
		}
	}()

	log.ApplicationLogger().Info(fmt.Sprintf("🎯 %s initialized successfully in %s", appName, time.Since(started).Round(time.Millisecond)))
	log.ApplicationLogger().Info(fmt.Sprintf("🤖 %s running. Press Ctrl+C to stop...", appName))

	// Wait for shutdown signal
	util.WaitForInterrupt()
	log.ApplicationLogger().Info(fmt.Sprintf("🛑 Stopping %s...", appName))

	close(heartbeatStop)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := controlServer.Shutdown(shutdownCtx); err != nil {
		log.ErrorLoggerRaw().Error(fmt.Sprintf("Control server did not stop cleanly: %v", err))
	}
	if err := discordSession.Close(); err != nil {
		log.ErrorLoggerRaw().Error(fmt.Sprintf("Discord session did not close cleanly: %v", err))
	}
	if err := store.Close(); err != nil {
		log.ErrorLoggerRaw().Error(fmt.Sprintf("Store did not close cleanly: %v", err))
	}

	return nil
}
