package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/ui/theme"
)

const bannerArt = ` ┏━┓┏━╸╻ ╻┏━╸╺┳┓╻ ╻╻  ┏━╸┏━┓┏━┓┏━╸
 ┗━┓┃  ┣━┫┣╸  ┃┃┃ ┃┃  ┣╸ ┣━┫┗━┓┣╸
 ┗━┛┗━╸╹ ╹┗━╸╺┻┛┗━┛┗━╸┗━╸╹ ╹┗━┛┗━╸`

const bannerCompact = "S C H E D U L E A S E"

// RenderBanner returns the SchedulEase banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
