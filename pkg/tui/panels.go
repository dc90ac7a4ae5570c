package tui

import (
	"fmt"
	"strings"

	"github.com/1F47E/go-navigator/pkg/format"
	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/1F47E/go-navigator/pkg/session"
	"github.com/charmbracelet/lipgloss"
)

const maxDirections = 10

func (m Model) View() string {
	state := m.coord.State()

	var body string
	if state.Mode == session.ModeGraph {
		body = m.renderGraph()
	} else {
		body = m.renderMap()
	}

	w, _ := m.canvasSize()
	body = lipgloss.NewStyle().Width(w).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(state),
		lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSidebar(state)),
		m.renderStatus(state),
		m.renderHelp(state),
	)
}

func (m Model) renderHeader(state session.State) string {
	mapTab, graphTab := activeTabStyle, tabStyle
	if state.Mode == session.ModeGraph {
		mapTab, graphTab = tabStyle, activeTabStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("🧭 Navigator"), " ",
		mapTab.Render("Map"), graphTab.Render("Graph"))
}

func (m Model) renderSidebar(state session.State) string {
	sections := []string{m.renderControls(state)}
	if state.Route != nil {
		sections = append(sections, m.renderRouteInfo(state.Route))
	}
	return panelStyle.Width(sidebarWidth - 2).Render(strings.Join(sections, "\n\n"))
}

func (m Model) renderControls(state session.State) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Route"))
	b.WriteString("\n")

	b.WriteString(endpointLine("Start", state.Selection.Start, "Select a point on the map to set start location"))
	b.WriteString("\n")
	if state.Selection.Start != nil {
		b.WriteString(endpointLine("End", state.Selection.End, "Select a point on the map to set destination"))
		b.WriteString("\n")
	}

	if state.Selection.Start == nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Move the cursor and press enter (or click) to begin"))
		b.WriteString("\n")
	}

	if state.Selection.Complete() {
		b.WriteString("\n")
		switch {
		case state.Loading:
			b.WriteString(m.spinner.View() + " " + infoStyle.Render("Calculating..."))
		case state.HasRoute():
			b.WriteString(statStyle.Render("[f] Recalculate"))
		default:
			b.WriteString(statStyle.Render("[f] Find Route"))
		}
		b.WriteString("\n")
		if state.CanSwap() {
			b.WriteString(dimStyle.Render("[s] Swap"))
			b.WriteString("\n")
		}
	}
	if state.Selection.Start != nil {
		b.WriteString(dimStyle.Render("[r] Reset"))
		b.WriteString("\n")
	}

	if state.Failure != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Could not calculate route"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(state.Failure.Error()))
	}

	return strings.TrimRight(b.String(), "\n")
}

func endpointLine(label string, c *models.Coordinate, hint string) string {
	if c == nil {
		return fmt.Sprintf("%s\n%s", statStyle.Render(label+":"), dimStyle.Render(hint))
	}
	return fmt.Sprintf("%s %s", statStyle.Render(label+":"), c.String())
}

func (m Model) renderRouteInfo(route *models.Route) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Route Info"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", statStyle.Render("Distance:"), format.Distance(route.Distance))
	fmt.Fprintf(&b, "%s %s\n", statStyle.Render("Duration:"), format.Duration(route.Duration))

	marker := "▸"
	if m.showDirections {
		marker = "▾"
	}
	fmt.Fprintf(&b, "%s %d Directions %s", marker, len(route.Instructions), dimStyle.Render("[d]"))

	if m.showDirections {
		for i, ins := range route.Instructions {
			if i == maxDirections {
				fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf("... %d more", len(route.Instructions)-maxDirections)))
				break
			}
			fmt.Fprintf(&b, "\n%2d. %s %s", i+1, ins.Text, dimStyle.Render("("+format.Distance(ins.Distance)+")"))
		}
	}
	return b.String()
}

func (m Model) renderStatus(state session.State) string {
	if state.Mode == session.ModeGraph {
		return dimStyle.Render(fmt.Sprintf("graph view  %s", m.player.State()))
	}

	cursor := m.cursorCoordinate()
	status := fmt.Sprintf("cursor %s  zoom %.0f", cursor, m.view.Zoom)
	if i, meters, ok := m.index.Nearest(cursor); ok {
		status += fmt.Sprintf("  nearest waypoint #%d (%s)", i+1, format.Distance(meters))
		status += fmt.Sprintf("  %d/%d in view", len(m.index.Within(m.view.Bounds())), m.index.Len())
	}
	return dimStyle.Render(status)
}

func (m Model) renderHelp(state session.State) string {
	keys := m.keys
	graph := state.Mode == session.ModeGraph
	keys.Select.SetEnabled(!graph && state.Selection.Phase() != session.PhaseHasStartAndEnd && !state.Loading)
	keys.Find.SetEnabled(state.CanFindRoute())
	keys.Swap.SetEnabled(state.CanSwap())
	keys.View.SetEnabled(state.CanShowGraph() || graph)
	keys.Directions.SetEnabled(state.HasRoute())
	keys.Play.SetEnabled(graph)
	keys.Replay.SetEnabled(graph)
	keys.Up.SetEnabled(!graph)
	keys.Down.SetEnabled(!graph)
	keys.Left.SetEnabled(!graph)
	keys.Right.SetEnabled(!graph)
	return m.help.View(keys)
}
