package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/runtime"
)

var runWatch bool

var runCmd = &cobra.Command{
	Use:   "run <file.kry|file.kir>",
	Short: L("Run a KRY or KIR file in a demo executor"),
	Args:  cobra.ExactArgs(1),
	Run:   runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, L("Watch the file and hot-reload on change"))
}

const frameInterval = time.Second / 30

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// runModel is the demo executor: a frame loop ticking one instance's
// animations and transitions, rendering the tree as styled text.
type runModel struct {
	inst     *runtime.Instance
	recovery *runtime.Recovery
	last     time.Time
	reloads  int
}

func (m *runModel) Init() tea.Cmd {
	m.last = time.Now()
	return frameTick()
}

func (m *runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case frameMsg:
		now := time.Time(msg)
		delta := now.Sub(m.last).Seconds()
		m.last = now
		m.recovery.SafeFrame(func() {
			if m.inst.Running() {
				m.inst.Executor.Tick(delta)
			}
			if runWatch && m.inst.Poll() == runtime.ReloadOK {
				m.reloads++
			}
		})
		return m, frameTick()
	}
	return m, nil
}

func (m *runModel) View() string {
	root := m.inst.Context.Root
	body := renderComponent(root)
	status := fmt.Sprintf("kryonc · v%d · q to quit", m.inst.Version())
	return body + "\n" + lipgloss.NewStyle().Faint(true).Render(status) + "\n"
}

// renderComponent maps the tree to terminal text: a thin stand-in for a
// real backend that is enough to see styles, layout direction, and
// animation output moving.
func renderComponent(c *kirtree.Component) string {
	if c == nil {
		return ""
	}
	if c.Style != nil && !c.Style.Visible {
		return ""
	}

	var parts []string
	for _, child := range c.Children {
		if s := renderComponent(child); s != "" {
			parts = append(parts, s)
		}
	}

	self := ""
	if c.TextContent != nil {
		self = styleText(c, *c.TextContent)
	}

	row := c.Layout != nil && c.Layout.Flex.Direction == kirtree.FlexRow
	var body string
	switch {
	case self != "" && len(parts) == 0:
		body = self
	case row:
		body = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	if self != "" && len(parts) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, self, body)
	}

	if c.Type == kirtree.Button {
		body = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Render(body)
	}
	return body
}

func styleText(c *kirtree.Component, text string) string {
	st := lipgloss.NewStyle()
	if s := c.Style; s != nil {
		if s.Font.Color.Kind == kirtree.ColorSolid {
			st = st.Foreground(lipglossColor(s.Font.Color.Solid))
		}
		if s.Background.Kind == kirtree.ColorSolid {
			st = st.Background(lipglossColor(s.Background.Solid))
		}
		st = st.Bold(s.Font.Bold).Italic(s.Font.Italic)
		if s.Opacity < 0.5 {
			st = st.Faint(true)
		}
	}
	return st.Render(text)
}

func lipglossColor(c kirtree.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func runRun(cmd *cobra.Command, args []string) {
	path := args[0]
	ctx, err := loadTree(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	inst := runtime.NewInstance("")
	inst.Context = ctx
	inst.Executor = runtime.NewExecutor(inst)
	inst.Start()

	if runWatch {
		if err := inst.WatchFile(path); err != nil {
			log.Warn("run: cannot watch %s: %v", path, err)
		}
	}

	m := &runModel{inst: inst, recovery: runtime.NewRecovery(inst)}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
	inst.Destroy()
}
