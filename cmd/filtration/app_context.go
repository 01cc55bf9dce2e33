package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	scriptapp "github.com/958877748/Filtration/internal/app/script"
	"github.com/958877748/Filtration/internal/config"
	"github.com/958877748/Filtration/internal/domain/filter"
	"github.com/958877748/Filtration/internal/infrastructure/clipboard"
	"github.com/958877748/Filtration/internal/infrastructure/persistence"
	"github.com/958877748/Filtration/internal/infrastructure/vcs"
	"github.com/958877748/Filtration/internal/logger"
	"github.com/958877748/Filtration/internal/ports"
	"github.com/958877748/Filtration/internal/registry"
)

// AppContext bundles the services a command needs. It is built per
// invocation from the settings file.
type AppContext struct {
	Settings  *config.Settings
	Logger    ports.Logger
	Store     ports.ScriptStore
	Clipboard *clipboard.File
	Script    *scriptapp.Service
}

// newAppContext loads settings, builds the logger and store chain, and
// returns a context carrying a fresh correlation ID.
func newAppContext(cmd *cobra.Command, flags *rootFlags, operation string) (*AppContext, context.Context, error) {
	settingsPath := flags.configPath
	if settingsPath == "" {
		path, err := config.DefaultSettingsPath()
		if err != nil {
			return nil, nil, newCommandError(operation, "determining settings path", err, "Ensure your HOME directory is set correctly or pass --config.")
		}
		settingsPath = path
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, nil, newCommandError(operation, "loading settings", err, "Fix the settings file or pass --config with a valid file.")
	}

	level := settings.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: settings.Log.HumanReadable,
		Writer:        cmd.ErrOrStderr(),
		Layer:         "cli",
		Component:     cmd.Name(),
	})
	if err != nil {
		return nil, nil, newCommandError(operation, "creating logger", err, "Use one of debug, info, warn or error for log.level.")
	}

	var store ports.ScriptStore = persistence.NewFileStore(log)
	if settings.Git.AutoCommit {
		store = vcs.NewGitStore(store, vcs.Author{Name: settings.Git.AuthorName, Email: settings.Git.AuthorEmail}, log)
	}

	clip := clipboard.NewFile(settings.ClipboardPath)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
	log.Debug(ctx, "command started", "operation", operation, "settings", settingsPath)

	return &AppContext{
		Settings:  settings,
		Logger:    log,
		Store:     store,
		Clipboard: clip,
		Script:    scriptapp.NewService(store, clip, log),
	}, ctx, nil
}

// openScript resolves path against the script directory and loads it.
func (a *AppContext) openScript(ctx context.Context, operation, path string) (*filter.Script, error) {
	resolved := a.Settings.ResolveScriptPath(path)
	script, err := a.Script.Open(ctx, resolved)
	if err != nil {
		return nil, newCommandError(operation, "loading "+resolved, err, "Check that the file exists and is a valid filter script.")
	}
	a.recordRecent(ctx, script)
	return script, nil
}

// recordRecent adds script to the recent-scripts list. Failures are logged
// and never fail the command.
func (a *AppContext) recordRecent(ctx context.Context, script *filter.Script) {
	reg, err := registry.NewRegistry(a.Settings.RecentPath, a.Settings.RecentLimit)
	if err != nil {
		a.Logger.Warn(ctx, "recent list unavailable", "path", a.Settings.RecentPath, "error", err)
		return
	}
	reg.Touch(registry.Entry{
		Path:        script.FilePath,
		Description: script.Description,
		Blocks:      len(script.Blocks),
		Sections:    len(script.Sections()),
	})
	if err := reg.Save(); err != nil {
		a.Logger.Warn(ctx, "recent list not saved", "path", a.Settings.RecentPath, "error", err)
	}
}

// saveScript persists script and wraps failures for display.
func (a *AppContext) saveScript(ctx context.Context, operation string, script *filter.Script) error {
	if err := a.Script.Save(ctx, script); err != nil {
		return newCommandError(operation, "saving "+script.FilePath, err, "Fix the reported problems and retry; the file was not changed.")
	}
	return nil
}

// blockAt resolves a 0-based block index argument.
func blockAt(operation string, script *filter.Script, arg string) (filter.Block, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return nil, newCommandError(operation, "reading block index", err, "Pass a 0-based block index as shown by 'filtration show'.")
	}
	block, err := script.BlockAt(index)
	if err != nil {
		return nil, newCommandError(operation, "selecting block "+arg, err, "Run 'filtration show' to list block indexes.")
	}
	return block, nil
}

// targetAt resolves an optional --after index; a negative index means none.
func targetAt(operation string, script *filter.Script, index int) (filter.Block, error) {
	if index < 0 {
		return nil, nil
	}
	return blockAt(operation, script, strconv.Itoa(index))
}
