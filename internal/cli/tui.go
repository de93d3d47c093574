package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/overlay"
	"github.com/matzehuels/claimviz/pkg/scene"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

var (
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// InspectModel is the bubbletea model for browsing one rendered request.
// The left pane lists instructions; the right pane shows the world column
// under the selected marker.
type InspectModel struct {
	World        voxel.World
	Title        string
	Instructions []overlay.PlacementInstruction

	Cursor int
	Offset int
	Height int
	// Window is the number of column rows shown above and below a marker.
	Window int
}

// NewInspectModel creates a model over ins.
func NewInspectModel(w voxel.World, title string, ins []overlay.PlacementInstruction) InspectModel {
	return InspectModel{
		World:        w,
		Title:        title,
		Instructions: ins,
		Height:       15,
		Window:       4,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Instructions))
		case "end", "G":
			m.move(len(m.Instructions))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by d, clamped, and scrolls to keep it visible.
func (m *InspectModel) move(d int) {
	if len(m.Instructions) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+d, 0), len(m.Instructions)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Instructions) == 0 {
		b.WriteString(listDimStyle.Render("no markers"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Instructions))
	list := instructionTable(m.Instructions[m.Offset:end], m.Cursor-m.Offset)

	sel := m.Instructions[m.Cursor]
	column := strings.Join(columnStrip(m.World, sel.Pos, m.Window), "\n")
	panel := panelStyle.Render(StyleDim.Render(fmt.Sprintf("column %d, %d", sel.Pos.X, sel.Pos.Z)) + "\n" + column)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", panel))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Instructions))))
	return b.String()
}

type inspectOpts struct {
	request string
	noTUI   bool
}

func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Browse the markers of one request interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.request, "request", "r", "", "request name (default: the first)")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "print the instruction table instead of starting the browser")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path string, opts inspectOpts) error {
	sc, err := scene.Load(path)
	if err != nil {
		return err
	}
	req, err := findRequest(sc, opts.request)
	if err != nil {
		return err
	}

	ins, err := overlay.NewRenderer(sc.World).Render(ctx, req.Request)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("rendered for inspection", "request", req.Name, "markers", len(ins))

	title := fmt.Sprintf("%s / %s (%s)", sc.Name, req.Name, req.Style)
	if opts.noTUI {
		fmt.Println(StyleTitle.Render(title))
		fmt.Println(instructionTable(ins, -1))
		return nil
	}

	_, err = tea.NewProgram(NewInspectModel(sc.World, title, ins), tea.WithContext(ctx)).Run()
	return err
}

// findRequest returns the named request, or the first when name is empty.
func findRequest(sc *scene.Scene, name string) (scene.Request, error) {
	if name == "" {
		return sc.Requests[0], nil
	}
	names := make([]string, len(sc.Requests))
	for i, r := range sc.Requests {
		if r.Name == name {
			return r, nil
		}
		names[i] = r.Name
	}
	return scene.Request{}, apperr.New(apperr.ErrCodeInvalidInput, "no request %q in scene %s (have: %s)", name, sc.Name, strings.Join(names, ", "))
}
