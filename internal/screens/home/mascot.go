package home

import (
	"charm.land/lipgloss/v2"

	"github.com/bevuihoc/bevuihoc/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // nothing played yet
	MascotCelebrating                      // at least one best score
)

const mascotIdle = `┌─────┐
│ ◕ ◕ │
│  ◡  │
│ A+1 │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▽  │
│ A+1 │
└─╥═╥─┘
  ╚═╝`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	if v == MascotCelebrating {
		art, fg = mascotCelebrating, theme.ArcadeYellow
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

func mascotFor(total int) MascotVariant {
	if total > 0 {
		return MascotCelebrating
	}
	return MascotIdle
}
