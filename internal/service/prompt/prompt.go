package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/platform"
	"github.com/oshokin/nwjs-swap/internal/service/common"
	"github.com/oshokin/nwjs-swap/internal/service/fetcher"
)

// customChoice selects a version typed by the user.
const customChoice = "5"

// ErrAborted is returned when input ends before all questions were answered.
var ErrAborted = errors.New("input ended before all answers were given")

// versionChoice is one entry of the version menu.
type versionChoice struct {
	key     string
	version string
	note    string
}

//nolint:gochecknoglobals // Static menu.
var versionMenu = []versionChoice{
	{"1", "v0.29.4", "maximum compatibility, the original RPG Maker MV era"},
	{"2", fetcher.DefaultVersion, "balanced performance and compatibility"},
	{"3", "v0.72.0", "modern stable, last release supporting Windows 7"},
	{"4", "v0.90.0", "best performance, requires Windows 10 or newer"},
}

// Answers are the settings collected by the prompts.
type Answers struct {
	// GamePath is an existing game folder.
	GamePath string
	// ExecutableName has no ".exe" suffix.
	ExecutableName string
	// RuntimePath is an optional local NW.js folder.
	RuntimePath string
	// Version is the normalized NW.js release.
	Version string
	// SDK selects the SDK flavor.
	SDK bool
	// Backup copies the game folder first.
	Backup bool
	// Verbose enables debug logging.
	Verbose bool
}

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask walks through every question. Defaults fill unanswered questions;
// an empty Version default means the balanced menu entry.
func (p *Prompter) Ask(ctx context.Context, defaults Answers) (*Answers, error) {
	p.println(titleStyle.Render("RPG Maker MV NW.js updater"))

	answers := defaults

	var err error

	if answers.GamePath, err = p.askGamePath(ctx); err != nil {
		return nil, err
	}

	if answers.ExecutableName, err = p.askExecutableName(ctx, defaults.ExecutableName); err != nil {
		return nil, err
	}

	runtimePath, err := p.ask(ctx, "Existing NW.js folder (press Enter to download): ")
	if err != nil {
		return nil, err
	}

	answers.RuntimePath = stripQuotes(runtimePath)

	if answers.Version, err = p.askVersion(ctx, defaults.Version); err != nil {
		return nil, err
	}

	if answers.SDK, err = p.askYesNo(ctx, "Use SDK build?", defaults.SDK); err != nil {
		return nil, err
	}

	if answers.Backup, err = p.askYesNo(ctx, "Create backup before processing?", defaults.Backup); err != nil {
		return nil, err
	}

	if answers.Verbose, err = p.askYesNo(ctx, "Enable verbose logging?", defaults.Verbose); err != nil {
		return nil, err
	}

	return &answers, nil
}

// askExecutableName repeats the question until the name is usable.
func (p *Prompter) askExecutableName(ctx context.Context, fallback string) (string, error) {
	name := platform.TrimExecutableSuffix(fallback)
	if name == "" {
		name = game.DefaultExecutableName
	}

	for {
		answer, err := p.ask(ctx, fmt.Sprintf("Executable name (default: %s): ", name))
		if err != nil {
			return "", err
		}

		answer = platform.TrimExecutableSuffix(answer)
		if answer == "" {
			return name, nil
		}

		if err = game.CheckExecutableName(answer); err != nil {
			p.println(errorStyle.Render(err.Error()))
			continue
		}

		return answer, nil
	}
}

// Confirm prints a summary of answers and asks whether to proceed.
func (p *Prompter) Confirm(ctx context.Context, answers *Answers) (bool, error) {
	rows := [][2]string{
		{"Game path", answers.GamePath},
		{"Executable name", answers.ExecutableName},
		{"NW.js version", answers.Version},
		{"Build type", BuildType(answers.SDK)},
		{"Create backup", yesNo(answers.Backup)},
	}

	if answers.RuntimePath != "" {
		rows = append(rows, [2]string{"NW.js path", answers.RuntimePath})
	}

	p.println("")
	p.println(Summary("Configuration summary", rows))

	return p.askYesNo(ctx, "Proceed?", true)
}

func (p *Prompter) askGamePath(ctx context.Context) (string, error) {
	for {
		answer, err := p.ask(ctx, "Path to the RPG Maker MV game folder: ")
		if err != nil {
			return "", err
		}

		answer = stripQuotes(answer)

		switch {
		case answer == "":
			p.println(errorStyle.Render("Please enter a path."))
		case !common.IsDir(answer):
			p.println(errorStyle.Render("Folder not found, please enter a valid path."))
		default:
			return answer, nil
		}
	}
}

func (p *Prompter) askVersion(ctx context.Context, fallback string) (string, error) {
	if fallback == "" {
		fallback = fetcher.DefaultVersion
	}

	p.println("")
	p.println(titleStyle.Render("NW.js version"))

	for _, choice := range versionMenu {
		p.println(fmt.Sprintf("  %s. %s (%s)", choice.key, choice.version, labelStyle.Render(choice.note)))
	}

	p.println(fmt.Sprintf("  %s. Custom version", customChoice))

	for {
		answer, err := p.ask(ctx, fmt.Sprintf("Select 1-%s or press Enter for %s: ", customChoice, fallback))
		if err != nil {
			return "", err
		}

		if answer == "" {
			return fetcher.NormalizeVersion(fallback), nil
		}

		for _, choice := range versionMenu {
			if answer == choice.key {
				return choice.version, nil
			}
		}

		if answer == customChoice {
			custom, customErr := p.askCustomVersion(ctx)
			if customErr != nil {
				return "", customErr
			}

			if custom != "" {
				return custom, nil
			}

			continue
		}

		p.println(errorStyle.Render("Invalid choice, select 1-5 or press Enter."))
	}
}

func (p *Prompter) askCustomVersion(ctx context.Context) (string, error) {
	answer, err := p.ask(ctx, "Custom version (e.g. v0.100.1): ")
	if err != nil {
		return "", err
	}

	if answer == "" {
		return "", nil
	}

	if err = fetcher.ValidateVersion(answer); err != nil {
		p.println(errorStyle.Render(err.Error()))
		return "", nil
	}

	return fetcher.NormalizeVersion(answer), nil
}

// askYesNo accepts y/yes and n/no in any case; anything else means fallback.
func (p *Prompter) askYesNo(ctx context.Context, question string, fallback bool) (bool, error) {
	hint := "(y/N)"
	if fallback {
		hint = "(Y/n)"
	}

	answer, err := p.ask(ctx, question+" "+hint+": ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return fallback, nil
	}
}

// ask prints question and returns the trimmed answer line.
func (p *Prompter) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	_, _ = fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}

		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (p *Prompter) println(line string) {
	_, _ = fmt.Fprintln(p.out, line)
}

// stripQuotes removes quotes a file manager adds around dragged paths.
func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// BuildType names the runtime flavor.
func BuildType(sdk bool) string {
	if sdk {
		return "SDK"
	}

	return "Normal"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}
