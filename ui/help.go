package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpText = `[yellow::b]Keyboard Shortcuts[-:-:-]

[lightgreen]Playback Controls:[-]
  [white]Space[-]          Play/Pause current track
  [white]Enter / click[-]  Open selected track
  [white]Ctrl+→ / n[-]     Next track
  [white]Ctrl+← / p[-]     Previous track
  [white]Ctrl+↑ / +[-]     Volume up
  [white]Ctrl+↓ / -[-]     Volume down
  [white]s[-]              Toggle shuffle
  [white]r[-]              Toggle repeat
  [white]click bar[-]      Seek (display only)

[lightgreen]Navigation:[-]
  [white]↑ / ↓[-]          Move in the track list
  [white]gg / G[-]         Open first / last track
  [white]l[-]              Show or hide lyrics
  [white]d[-]              Download current track
  [white]?[-]              Show this help panel

[lightgreen]General:[-]
  [white]ESC[-]            Back to list / Exit program
  [white]q / Ctrl+C[-]     Exit program

[yellow]Press ESC or ? to close this help panel[-]
`

// HelpView represents the keyboard shortcuts help interface
type HelpView struct {
	app       *App
	container *tview.Flex
	textView  *tview.TextView
	isActive  bool
}

// NewHelpView creates a new help view
func NewHelpView(app *App) *HelpView {
	hv := &HelpView{
		app: app,
	}

	hv.textView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetText(helpText)

	hv.container = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(hv.textView, 0, 1, true)

	hv.container.SetBorder(true).
		SetTitle(" Help (ESC to close) ").
		SetBorderColor(tcell.ColorYellow)

	return hv
}

// Show displays the help view
func (hv *HelpView) Show() {
	hv.isActive = true
	hv.app.tviewApp.SetFocus(hv.textView)
}

// Close hides the help view and returns focus to the page underneath
func (hv *HelpView) Close() {
	hv.isActive = false
	hv.app.pages.HidePage(pageHelp)
	if name, _ := hv.app.pages.GetFrontPage(); name == pagePlayer {
		hv.app.tviewApp.SetFocus(hv.app.detailView)
		return
	}
	hv.app.tviewApp.SetFocus(hv.app.trackTable)
}

// IsActive returns whether the help view is active
func (hv *HelpView) IsActive() bool {
	return hv.isActive
}

// GetContainer returns the help view container
func (hv *HelpView) GetContainer() *tview.Flex {
	return hv.container
}
