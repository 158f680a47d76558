package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathchallenge/internal/router"
	"github.com/abhisek/mathchallenge/internal/screen"
	sessionscreen "github.com/abhisek/mathchallenge/internal/screens/session"
	"github.com/abhisek/mathchallenge/internal/session"
	"github.com/abhisek/mathchallenge/internal/ui/components"
	"github.com/abhisek/mathchallenge/internal/ui/layout"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	ctrl    *session.Controller
	baseURL string
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. baseURL is shown for reference only.
func New(ctrl *session.Controller, baseURL string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START SESSION", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sessionscreen.New(ctrl)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		ctrl:    ctrl,
		baseURL: baseURL,
		menu:    components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	compact := layout.IsCompact(width, height+layout.HeaderHeight+layout.FooterHeight)
	cw := components.ContentWidth(width)

	phase := h.ctrl.Snapshot().Phase
	last := h.ctrl.Summary()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(mascotFor(phase, last))))
	}
	sections = append(sections, renderStatsBar(phase, last, cw))
	sections = append(sections, components.ButtonMenu(h.menu, cw))
	if h.baseURL != "" {
		sections = append(sections, renderEndpoint(h.baseURL, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
