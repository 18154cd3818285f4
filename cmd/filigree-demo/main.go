// Command filigree-demo opens a file in a terminal code editor built on
// the filigree engine: tree-sitter highlighting, coalesced undo, mouse
// selection, and live config reload.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/filigree"
	"github.com/iw2rmb/filigree/syntax"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC response cannot race the input loop and leak into the document.
	_ = lipgloss.HasDarkBackground()
}

var (
	cfgFile string
	cfg     demoConfig
)

// demoConfig is the viper-backed configuration of the binary. Theme keys
// are syntax category names ("keyword", "string", ...) mapped to colors.
type demoConfig struct {
	TabWidth         int               `mapstructure:"tab_width"`
	LineNumbers      bool              `mapstructure:"line_numbers"`
	FollowCursorOnly bool              `mapstructure:"follow_cursor_only"`
	Theme            map[string]string `mapstructure:"theme"`
}

var rootCmd = &cobra.Command{
	Use:   "filigree-demo <file>",
	Short: "A small terminal code editor built on the filigree engine",
	Long: `filigree-demo opens one file in a syntax-highlighted terminal editor.
The language is detected from the file extension (override with --lang).

Ctrl+S saves, Ctrl+Q quits. Editing keys follow the editor widget
defaults: ctrl+z/ctrl+y undo and redo, ctrl+c/x/v clipboard, ctrl+/
toggles comments, tab indents the selection.

Configuration lives at ~/.config/filigree/config.yaml and is reloaded
live while the editor runs. The open file is watched too: saves made by
other programs are picked up as long as the buffer has no unsaved
edits.`,
	Version: filigree.Version(),
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/filigree/config.yaml)")
	rootCmd.Flags().StringP("lang", "l", "",
		"language id (default: detected from the file extension)")
	rootCmd.Flags().Int("tab-width", 0, "visual width of a tab stop")
	rootCmd.Flags().Bool("read-only", false, "open as a viewer; edits are ignored")
	rootCmd.Flags().Bool("no-line-numbers", false, "hide the line-number gutter")

	_ = viper.BindPFlag("tab_width", rootCmd.Flags().Lookup("tab-width"))
}

func initConfig() {
	viper.SetDefault("tab_width", 4)
	viper.SetDefault("line_numbers", true)
	viper.SetDefault("follow_cursor_only", false)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "filigree"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing config means defaults. A malformed one is worth a
		// warning but should not keep the editor from starting.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "filigree-demo: config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	path := args[0]

	langID, _ := cmd.Flags().GetString("lang")
	if langID == "" {
		langID = syntax.Detect(path)
	}
	if langID == "" {
		return fmt.Errorf("no language registered for %q (known: %s); pass --lang",
			filepath.Base(path), strings.Join(syntax.Languages(), ", "))
	}

	text, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		// A new file starts empty and is created on first save.
	}

	if hide, _ := cmd.Flags().GetBool("no-line-numbers"); hide {
		cfg.LineNumbers = false
	}
	readOnly, _ := cmd.Flags().GetBool("read-only")

	app, err := newApp(path, string(text), langID, cfg, readOnly)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, runErr := p.Run()
	app.Close()
	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
