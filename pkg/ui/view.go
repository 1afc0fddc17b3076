package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/blaubaer/party-deck/pkg/blow"
	"github.com/blaubaer/party-deck/pkg/deck"
	"github.com/blaubaer/party-deck/pkg/effect"
)

const (
	maxCardWidth = 64
	logLines     = 6
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e91e63"))
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff8fab")).
			Padding(1, 3).
			Align(lipgloss.Center)
	photoStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#aa96da")).
			Padding(0, 2).
			Align(lipgloss.Center)
	placeholderStyle = photoStyle.
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("#667eea")).
				Foreground(lipgloss.Color("#764ba2"))
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#e91e63"))
	armedButtonStyle = buttonStyle.
				Background(lipgloss.Color("#ff4d4d")).
				Blink(true)
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4dd26b"))
	controlStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e91e63"))
	disabledStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#888888"))
	noticeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4d4d"))
	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Foreground(lipgloss.Color("#aaaaaa"))
)

func (this *Model) View() string {
	if this.quitting {
		return ""
	}
	now := this.Field.Now()
	snapshot := this.Navigator.Snapshot()

	var footer []string
	footer = append(footer, this.viewIndicators(snapshot), this.viewControls(snapshot))
	if this.notice != "" {
		footer = append(footer, noticeStyle.Render(this.notice))
	}
	footer = append(footer, this.help.ShortHelpView(this.keys.Help()))
	if this.showLogs {
		footer = append(footer, this.viewLogs())
	}

	card := this.viewCard(snapshot.Index)
	bottom := lipgloss.JoinVertical(lipgloss.Center, footer...)
	skyHeight := this.height - lipgloss.Height(card) - lipgloss.Height(bottom)
	if skyHeight < 1 {
		skyHeight = 1
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		this.viewSky(now, this.width, skyHeight),
		lipgloss.PlaceHorizontal(this.width, lipgloss.Center, card),
		lipgloss.PlaceHorizontal(this.width, lipgloss.Center, bottom),
	)
}

func (this *Model) cardWidth() int {
	w := this.width - 4
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (this *Model) viewCard(index int) string {
	slide := this.Deck.Slides[index]
	var parts []string
	if slide.Title != "" {
		parts = append(parts, titleStyle.Render(slide.Title), "")
	}
	if photo, ok := this.photos[index]; ok {
		parts = append(parts, viewPhoto(photo), "")
	}
	parts = append(parts, slide.Lines...)
	if slide.Cake {
		parts = append(parts, "", this.viewCake(this.Cake.Snapshot()))
	}
	return cardStyle.Width(this.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func viewPhoto(photo deck.Photo) string {
	if photo.Placeholder {
		return placeholderStyle.Render(strings.Join(photo.Caption, "\n"))
	}
	return photoStyle.Render(fmt.Sprintf("🖼  %s\n%dx%d %s", photo.Path, photo.Width, photo.Height, photo.Format))
}

func (this *Model) viewCake(cake blow.CakeSnapshot) string {
	flames := make([]string, len(cake.Lit))
	for i, lit := range cake.Lit {
		if lit {
			flames[i] = "🔥"
		} else {
			flames[i] = "💨"
		}
	}
	candles := strings.TrimSpace(strings.Repeat("🕯️ ", len(cake.Lit)))

	button := buttonStyle.Render(this.Deck.Cake.Button)
	if cake.Armed {
		button = armedButtonStyle.Render(this.Deck.Cake.Button + " 🎙")
	}

	parts := []string{strings.Join(flames, " "), candles, "🎂", "", button, "", cake.Instruction}
	if cake.Succeeded {
		parts = append(parts, successStyle.Render(this.Deck.Cake.Success))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (this *Model) viewIndicators(snapshot deck.Snapshot) string {
	dots := make([]string, len(snapshot.Controls.Indicators))
	for i, active := range snapshot.Controls.Indicators {
		switch {
		case active:
			dots[i] = controlStyle.Render("●")
		case snapshot.Slides[i] == deck.SlideStatePrior:
			dots[i] = disabledStyle.Render("●")
		default:
			dots[i] = disabledStyle.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (this *Model) viewControls(snapshot deck.Snapshot) string {
	prev, next := controlStyle.Render("◀ prev"), controlStyle.Render("next ▶")
	if snapshot.Controls.PrevDisabled {
		prev = disabledStyle.Render("◀ prev")
	}
	if snapshot.Controls.NextDisabled {
		next = disabledStyle.Render("next ▶")
	}
	position := fmt.Sprintf("%d/%d", snapshot.Index+1, len(snapshot.Slides))
	return strings.Join([]string{prev, position, next, "   " + this.Music.Label()}, "  ")
}

func (this *Model) viewLogs() string {
	if this.Logs == nil {
		return logStyle.Width(this.cardWidth()).Render("")
	}
	return logStyle.Width(this.cardWidth()).Render(strings.Join(this.Logs.Last(logLines), "\n"))
}

// viewSky draws all live decorations into a band of the given size. A cell
// already taken keeps its glyph.
func (this *Model) viewSky(now time.Time, width, height int) string {
	if width < 1 {
		width = 1
	}
	grid := make([][]string, height)
	for row := range grid {
		grid[row] = make([]string, width)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}

	for _, e := range this.Field.Snapshot() {
		if !e.Visible(now) {
			continue
		}
		x, y := e.Position(now)
		w := lipgloss.Width(e.Glyph)
		if w < 1 || w > width {
			continue
		}
		col := clampCell(int(x*float64(width-1)), width-w)
		row := clampCell(int(y*float64(height-1)), height-1)
		if !free(grid[row][col : col+w]) {
			continue
		}
		grid[row][col] = glyphStyle(e).Render(e.Glyph)
		for i := 1; i < w; i++ {
			grid[row][col+i] = ""
		}
	}

	rows := make([]string, height)
	for i, cells := range grid {
		rows[i] = strings.Join(cells, "")
	}
	return strings.Join(rows, "\n")
}

func glyphStyle(e effect.Element) lipgloss.Style {
	result := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color))
	if e.Kind == effect.KindSparkle {
		result = result.Bold(true)
	}
	return result
}

func free(cells []string) bool {
	for _, c := range cells {
		if c != " " {
			return false
		}
	}
	return true
}

func clampCell(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
