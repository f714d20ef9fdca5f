package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/eta/adapter-bubbletea"
	"github.com/ionut-t/eta/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const messageDuration = 3 * time.Second

var (
	cfgFile  string
	platform string
	debugLog string
)

var rootCmd = &cobra.Command{
	Use:   "eta [file...]",
	Short: "A small terminal text editor",
	Long: `eta opens each file given on the command line in its own document.
Missing files are created on the first save. Without arguments it starts
with an empty scratch document.`,
	RunE: runApp,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "TOML config file")
	rootCmd.Flags().StringVar(&platform, "platform", "", "key binding flavour: auto, mac, windows or linux")
	rootCmd.Flags().StringVar(&debugLog, "debug-log", "", "write debug logs to this file")
}

type Model struct {
	editor editor.Model
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)
		return m, nil

	case tea.MouseMsg:
		// Undo the border and padding drawn around the editor.
		msg.X -= 2
		msg.Y -= 1
		return m, m.forward(msg)

	case editor.CopyMsg:
		verb := "copied"
		if msg.Cut {
			verb = "cut"
		}
		cmd := m.editor.DispatchMessage(fmt.Sprintf("%d bytes %s", len(msg.Content), verb), messageDuration)
		return m, tea.Batch(cmd, m.forward(msg))

	case editor.SaveMsg:
		cmd := m.save(msg)
		return m, tea.Batch(cmd, m.forward(msg))

	case editor.ReloadMsg:
		cmd := m.reload(msg)
		return m, tea.Batch(cmd, m.forward(msg))

	case editor.QuitMsg:
		if dirty := m.editor.Session().Dirty(); len(dirty) > 0 {
			log.Info().Int("dirty", len(dirty)).Msg("quitting with unsaved documents")
		}
		return m, tea.Quit
	}

	return m, m.forward(msg)
}

// forward hands msg to the editor, which also keeps listening for its
// signals.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)
	return cmd
}

// save writes a document and only then marks it saved, so a failed write
// leaves it dirty.
func (m *Model) save(msg editor.SaveMsg) tea.Cmd {
	if msg.Path == nil {
		path := fmt.Sprintf("untitled-%s.txt", time.Now().Format("20060102-150405"))
		if err := m.editor.SetPath(msg.ID, path); err != nil {
			return m.editor.DispatchError(err, messageDuration)
		}
		msg.ID = core.DocID(filepath.Clean(path))
		msg.Path = &path
	}

	filePath := *msg.Path
	if strings.HasPrefix(filePath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return m.editor.DispatchError(err, messageDuration)
		}
		filePath = filepath.Join(homeDir, filePath[2:])
	}

	if err := os.WriteFile(filePath, []byte(msg.Content), 0644); err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("save failed")
		m.editor.GetEditor().DispatchError(core.ErrFailedToSaveId, fmt.Errorf("failed to save %s: %w", filePath, err))
		return nil
	}

	if err := m.editor.MarkSaved(msg.ID, msg.Content); err != nil {
		return m.editor.DispatchError(err, messageDuration)
	}

	log.Debug().Str("path", filePath).Int("bytes", len(msg.Content)).Msg("document saved")
	m.editor.GetEditor().DispatchMessage(core.ChangesSavedMessage, fmt.Sprintf("file saved to %s", *msg.Path))
	return nil
}

// reload reads a document from disk again, dropping its unsaved edits.
func (m *Model) reload(msg editor.ReloadMsg) tea.Cmd {
	content, err := os.ReadFile(msg.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return m.editor.DispatchError(fmt.Errorf("failed to read %s: %w", msg.Path, err), messageDuration)
	}
	if err := m.editor.Reload(msg.ID, content); err != nil {
		return m.editor.DispatchError(err, messageDuration)
	}

	log.Debug().Str("path", msg.Path).Int("bytes", len(content)).Msg("document reloaded")
	return m.editor.DispatchMessage(fmt.Sprintf("reloaded %s", msg.Path), messageDuration)
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}

func setupLogging(path string) (func(), error) {
	if path == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(debugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := core.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if platform != "" {
		cfg.Platform = platform
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	textEditor := editor.New(80, 20, cfg, core.WithLogger(log.Logger))
	textEditor.SetLogger(log.Logger)
	textEditor.SetPlaceholder("Start typing...")

	for _, file := range args {
		content, err := os.ReadFile(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		textEditor.Open(file, content)
	}
	if len(args) == 0 {
		textEditor.OpenScratch("")
	} else {
		// Show the first file rather than the last one opened.
		_ = textEditor.Session().SetCurrent(core.DocID(filepath.Clean(args[0])))
	}
	textEditor.Focus()

	p := tea.NewProgram(
		Model{editor: textEditor},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err = p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
