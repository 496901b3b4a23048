package cli

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/theme"
	"github.com/matzehuels/flowgraph/pkg/view"
)

// viewCommand creates the view command, an interactive terminal host for the
// pan/zoom view.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		width, height float64
		themeName     string
		basePath      string
		cycles        string
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a workflow graph interactively",
		Long: `Mount a workflow graph in an interactive view and drive it from the keyboard.
Arrow keys drag, +/- press the zoom controls, enter clicks the selected job.
Press r after editing the file to update the graph without losing the current
pan and zoom.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("theme") {
				themeName = c.config.Theme
			}
			if !cmd.Flags().Changed("base-path") {
				basePath = c.config.BasePath
			}
			if !cmd.Flags().Changed("cycles") {
				cycles = c.config.Cycles
			}
			dark, err := theme.Parse(themeName)
			if err != nil {
				return err
			}
			policy, err := layout.ParseCyclePolicy(cycles)
			if err != nil {
				return err
			}

			// The terminal belongs to the TUI; view logs would garble it.
			m, err := newViewModel(args[0], geom.Size{W: width, H: height}, view.Config{
				BasePath:      basePath,
				Theme:         dark,
				Logger:        log.New(io.Discard),
				LayoutOptions: []layout.Option{layout.WithCyclePolicy(policy)},
			})
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(viewModel); ok && fm.nav.count > 0 {
				printInfo(c.Out, "Last navigation: %s", StyleLink.Render(fm.nav.last))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 800, "surface width in pixels")
	cmd.Flags().Float64Var(&height, "height", 600, "surface height in pixels")
	cmd.Flags().StringVar(&themeName, "theme", "", "color theme: light (default), dark")
	cmd.Flags().StringVar(&basePath, "base-path", "", "navigation prefix for node clicks")
	cmd.Flags().StringVar(&cycles, "cycles", "", "cyclic dependencies: break (default), reject")

	return cmd
}
