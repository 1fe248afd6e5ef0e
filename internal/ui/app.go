package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/imageinfo/internal/command"
	"github.com/lumipallolabs/imageinfo/internal/core"
	"github.com/lumipallolabs/imageinfo/internal/imaging"
	"github.com/lumipallolabs/imageinfo/internal/logging"
	"github.com/lumipallolabs/imageinfo/internal/model"
	"go.uber.org/zap"
)

// Screen identifies what the app is showing
type Screen int

const (
	ScreenMain Screen = iota
	ScreenHelp
	ScreenRunning
	ScreenResult
	ScreenBye
)

// infoDoneMsg is sent when an image info task finishes
type infoDoneMsg struct {
	info *imaging.ImageInfo
	err  error
}

// exifDoneMsg is sent when an Exif task finishes
type exifDoneMsg struct {
	result *core.ExifResult
	err    error
}

// scanEventMsg carries one controller event of a running scan
type scanEventMsg struct {
	event core.Event
	ch    <-chan core.Event
}

// progressTickMsg polls scan progress
type progressTickMsg struct{}

// Timing constants
const (
	progressTickInterval = 100 * time.Millisecond
	byeDelay             = 2 * time.Second
	progressBarWidth     = 40
)

// App is the main application model
type App struct {
	// Components
	header   Header
	help     HelpOverlay
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model

	// State
	keys   KeyMap
	ctrl   *core.Controller
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	// UI state
	screen       Screen
	task         command.Kind
	unknown      string // last rejected input, shown under the prompt
	scanProgress model.ProgressEvent
	hasProgress  bool
	result       string

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance
func NewApp(ctrl *core.Controller) App {
	ctx, cancel := context.WithCancel(context.Background())

	ti := textinput.New()
	ti.Prompt = "|> "
	ti.Placeholder = "Enter command"
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(ColorCyan)

	return App{
		header:   NewHeader(),
		help:     NewHelpOverlay(),
		input:    ti,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressBarWidth)),
		keys:     DefaultKeyMap(),
		ctrl:     ctrl,
		ctx:      ctx,
		cancel:   cancel,
		logger:   logging.Named("ui"),
		screen:   ScreenMain,
	}
}

// Screen returns the current screen
func (a App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Image Info"), textinput.Blink)
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case infoDoneMsg:
		if msg.err != nil {
			return a.showResult(RenderError(msg.err)), nil
		}
		return a.showResult(RenderImageInfo(msg.info)), nil

	case exifDoneMsg:
		if msg.err != nil {
			return a.showResult(RenderError(msg.err)), nil
		}
		return a.showResult(RenderExif(msg.result)), nil

	case scanEventMsg:
		return a.handleScanEvent(msg)

	case progressTickMsg:
		if a.screen != ScreenRunning {
			return a, nil
		}
		if p, ok := a.ctrl.Progress(); ok {
			a.scanProgress = p
			a.hasProgress = true
		}
		return a, progressTick()

	case spinner.TickMsg:
		if a.screen != ScreenRunning {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.screen == ScreenMain {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		a.cancel()
		return a, tea.Quit
	}

	switch a.screen {
	case ScreenHelp:
		if key.Matches(msg, a.keys.Submit, a.keys.Back, a.keys.Help) {
			a.screen = ScreenMain
		}
		return a, nil

	case ScreenResult:
		if key.Matches(msg, a.keys.Submit, a.keys.Back) {
			a.ctrl.FinalizeScan()
			a.result = ""
			a.screen = ScreenMain
		}
		return a, nil

	case ScreenRunning, ScreenBye:
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.screen = ScreenHelp
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		line := a.input.Value()
		a.input.Reset()
		return a.runCommand(line)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// runCommand parses one input line and starts the matching task
func (a App) runCommand(line string) (tea.Model, tea.Cmd) {
	cmd, err := command.Parse(line)
	if err != nil {
		var unknown *command.UnknownCommandError
		if errors.As(err, &unknown) {
			a.unknown = unknown.Input
		}
		a.logger.Debug("unknown command", zap.String("input", line))
		return a, nil
	}
	a.unknown = ""
	a.task = cmd.Kind

	switch cmd.Kind {
	case command.KindHelp:
		a.screen = ScreenHelp
		return a, nil

	case command.KindExit:
		a.screen = ScreenBye
		a.cancel()
		return a, tea.Tick(byeDelay, func(time.Time) tea.Msg { return tea.Quit() })

	case command.KindInfo:
		a.screen = ScreenRunning
		ctrl, ctx, path := a.ctrl, a.ctx, cmd.Arg
		return a, tea.Batch(a.spinner.Tick, func() tea.Msg {
			info, err := ctrl.Inspect(ctx, path)
			return infoDoneMsg{info: info, err: err}
		})

	case command.KindExif:
		a.screen = ScreenRunning
		ctrl, ctx, path := a.ctrl, a.ctx, cmd.Arg
		return a, tea.Batch(a.spinner.Tick, func() tea.Msg {
			res, err := ctrl.Exif(ctx, path)
			return exifDoneMsg{result: res, err: err}
		})

	case command.KindScan:
		ch, err := a.ctrl.StartScan(a.ctx, cmd.Arg)
		if err != nil {
			return a.showResult(RenderError(err)), nil
		}
		a.screen = ScreenRunning
		a.hasProgress = false
		a.scanProgress = model.ProgressEvent{}
		return a, tea.Batch(a.spinner.Tick, progressTick(), listenForScanEvents(ch))
	}

	return a, nil
}

// handleScanEvent folds one controller event into the app
func (a App) handleScanEvent(msg scanEventMsg) (tea.Model, tea.Cmd) {
	switch e := msg.event.(type) {
	case core.ScanProgressEvent:
		a.scanProgress = e.Progress
		a.hasProgress = true
	case core.ScanCompletedEvent:
		return a.showResult(RenderScanResult(e.Result, a.width)), listenForScanEvents(msg.ch)
	case core.ErrorEvent:
		return a.showResult(RenderError(e.Err)), listenForScanEvents(msg.ch)
	}
	return a, listenForScanEvents(msg.ch)
}

func (a App) showResult(rendered string) App {
	a.result = rendered
	a.screen = ScreenResult
	return a
}

// listenForScanEvents returns a command that waits for the next scan event
func listenForScanEvents(ch <-chan core.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil // Channel closed
		}
		return scanEventMsg{event: event, ch: ch}
	}
}

func progressTick() tea.Cmd {
	return tea.Tick(progressTickInterval, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	a.header.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)

	barWidth := progressBarWidth
	if a.width > 0 && a.width-4 < barWidth {
		barWidth = a.width - 4
	}
	if barWidth < 10 {
		barWidth = 10
	}
	a.progress.Width = barWidth
}

// progressLine describes the root being walked
func (a App) progressLine() string {
	if !a.hasProgress {
		return MutedStyle.Render("Loading...")
	}
	p := a.scanProgress
	return fmt.Sprintf("Scanning %s (%d/%d) · %s matches so far",
		p.Root.Label(), p.RootsScanned+1, p.RootsTotal, FormatCount(p.MatchesSoFar))
}

// View implements tea.Model
func (a App) View() string {
	switch a.screen {
	case ScreenHelp:
		return lipgloss.JoinVertical(lipgloss.Left,
			a.help.View(),
			HelpBar(a.width, [2]string{"Enter", "continue"}),
		)

	case ScreenRunning:
		lines := []string{
			RenderTask(a.task.Title()),
			"",
			a.spinner.View() + " " + a.progressLine(),
		}
		if a.task == command.KindScan {
			lines = append(lines, a.progress.ViewAs(a.scanProgress.Fraction()))
		}
		lines = append(lines, "", HelpBar(a.width, [2]string{"Ctrl+C", "quit"}))
		return strings.Join(lines, "\n")

	case ScreenResult:
		return strings.Join([]string{
			RenderTask(a.task.Title()),
			a.result,
			HelpBar(a.width, [2]string{"Enter", "continue"}),
		}, "\n")

	case ScreenBye:
		return RenderBye() + "\n"
	}

	sections := []string{a.header.View(), ""}
	if a.unknown != "" {
		sections = append(sections, RenderUnknownCommand(a.unknown))
	}
	sections = append(sections,
		a.input.View(),
		HelpBar(a.width, [2]string{"Enter", "run"}, [2]string{"F1", "help"}, [2]string{"Ctrl+C", "quit"}),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
