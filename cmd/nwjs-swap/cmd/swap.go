package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/nwjs-swap/internal/config"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/service/fetcher"
	"github.com/oshokin/nwjs-swap/internal/service/prompt"
	"github.com/oshokin/nwjs-swap/internal/service/swap"
)

// errGamePathRequired is returned when no game folder is given and no terminal is attached.
var errGamePathRequired = errors.New("--game-path is required when not running in a terminal")

//nolint:gochecknoglobals // Shared styles.
var (
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// runSwap merges settings, flags and prompt answers and runs the swap.
func runSwap(ctx context.Context, cmd *cobra.Command) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts := optionsFromSettings(settings)
	if err = applyFlags(cmd, opts); err != nil {
		return err
	}

	debug := verbose

	if interactive || gamePath == "" {
		if !interactive && !stdinIsTerminal() {
			return errGamePathRequired
		}

		answers, proceed, askErr := ask(ctx, cmd, opts, debug)
		if askErr != nil {
			return askErr
		}

		if !proceed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), noticeStyle.Render("Operation cancelled."))
			return nil
		}

		applyAnswers(opts, answers)
		debug = answers.Verbose
	}

	ctx = logger.ToContext(ctx, newRunLogger(settings.Log.Level, debug))
	defer logger.Sync()

	result, err := swap.Run(ctx, opts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderResult(result))

	return nil
}

// optionsFromSettings seeds swap options from the loaded settings.
func optionsFromSettings(settings *config.Settings) *swap.Options {
	return &swap.Options{
		BaseURL:        settings.Runtime.BaseURL,
		Version:        settings.Runtime.Version,
		SDK:            settings.Runtime.SDK,
		ExecutableName: settings.Game.ExecutableName,
		Backup:         settings.Game.Backup,
		Shortcut:       settings.Game.Shortcut,
		KeepLocale:     settings.Cleanup.KeepLocale,
		ExtraCleanup:   settings.Cleanup.Extra,
	}
}

// applyFlags overrides options with flags given on the command line.
func applyFlags(cmd *cobra.Command, opts *swap.Options) error {
	opts.GameDir = gamePath
	opts.RuntimeDir = nwjsPath

	version, changed, err := versionFlag(cmd)
	if err != nil {
		return err
	}

	if changed {
		opts.Version = version
	}

	if noSDK {
		opts.SDK = false
	}

	if executableName != "" {
		opts.ExecutableName = executableName
	}

	if noBackup {
		opts.Backup = false
	}

	return nil
}

// versionFlag returns the normalized --nwjs-version and whether it was given.
func versionFlag(cmd *cobra.Command) (string, bool, error) {
	if !cmd.Flags().Changed("nwjs-version") {
		return "", false, nil
	}

	version := fetcher.NormalizeVersion(nwjsVersion)
	if err := fetcher.ValidateVersion(version); err != nil {
		return "", false, err
	}

	return version, true, nil
}

func ask(ctx context.Context, cmd *cobra.Command, opts *swap.Options, debug bool) (*prompt.Answers, bool, error) {
	prompter := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	answers, err := prompter.Ask(ctx, prompt.Answers{
		ExecutableName: opts.ExecutableName,
		RuntimePath:    opts.RuntimeDir,
		Version:        opts.Version,
		SDK:            opts.SDK,
		Backup:         opts.Backup,
		Verbose:        debug,
	})
	if err != nil {
		return nil, false, err
	}

	proceed, err := prompter.Confirm(ctx, answers)
	if err != nil {
		return nil, false, err
	}

	return answers, proceed, nil
}

func applyAnswers(opts *swap.Options, answers *prompt.Answers) {
	opts.GameDir = answers.GamePath
	opts.RuntimeDir = answers.RuntimePath
	opts.ExecutableName = answers.ExecutableName
	opts.Version = answers.Version
	opts.SDK = answers.SDK
	opts.Backup = answers.Backup
}

// newRunLogger builds the logger of one run from the settings level, or debug.
func newRunLogger(level string, debug bool) *zap.SugaredLogger {
	lvl, _ := logger.ParseLogLevel(level)
	if debug {
		lvl = zapcore.DebugLevel
	}

	logger.SetLevel(lvl)

	return logger.New(nil, logger.WithLevel(lvl))
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderResult(result *swap.Result) string {
	rows := [][2]string{
		{"Executable", result.Executable},
		{"Game folder", result.GameDir},
		{"Runtime", result.RuntimeDir},
		{"Removed", strconv.Itoa(result.Removed)},
		{"Installed", strconv.Itoa(result.Installed)},
		{"Cleaned up", strconv.Itoa(result.Cleaned)},
	}

	if result.BackupDir != "" {
		rows = append(rows, [2]string{"Backup", result.BackupDir})
	}

	if result.ShortcutPath != "" {
		rows = append(rows, [2]string{"Shortcut", result.ShortcutPath})
	}

	return prompt.Summary("NW.js runtime replaced", rows)
}
