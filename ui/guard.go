package ui

import "fyne.io/fyne/v2"

// singleFlight allows one conversion at a time by disabling every control
// and menu item that could start another. It is only used from the fyne
// event goroutine, so it needs no locking.
type singleFlight struct {
	busy      bool
	controls  []fyne.Disableable
	menuItems []*fyne.MenuItem
	menu      *fyne.MainMenu
}

func newSingleFlight(controls ...fyne.Disableable) *singleFlight {
	return &singleFlight{controls: controls}
}

// addMenuItems registers menu items to disable alongside the controls
func (g *singleFlight) addMenuItems(menu *fyne.MainMenu, items ...*fyne.MenuItem) {
	g.menu = menu
	g.menuItems = append(g.menuItems, items...)
}

// begin claims the slot. It returns false if a conversion is already running.
func (g *singleFlight) begin() bool {
	if g.busy {
		return false
	}
	g.busy = true
	g.setEnabled(false)
	return true
}

// end releases the slot and re-enables everything begin disabled
func (g *singleFlight) end() {
	if !g.busy {
		return
	}
	g.busy = false
	g.setEnabled(true)
}

func (g *singleFlight) setEnabled(enabled bool) {
	for _, c := range g.controls {
		if enabled {
			c.Enable()
		} else {
			c.Disable()
		}
	}
	for _, item := range g.menuItems {
		item.Disabled = !enabled
	}
	if g.menu != nil {
		g.menu.Refresh()
	}
}
