package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// createLayout sets up the list page, the player page and the bottom bars
func (a *App) createLayout() {
	a.progressBar = tview.NewTextView().
		SetDynamicColors(true)
	a.progressBar.SetBorder(false)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(false)
	a.statusBar.SetBorder(false)

	a.trackTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.trackTable.SetBorder(true).
		SetTitle(" Tracks ").
		SetBorderColor(tcell.ColorDarkGreen)
	a.trackTable.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkGreen).
		Foreground(tcell.ColorWhite))
	a.setupTableHeaders()

	a.coverView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	a.coverView.SetBorder(false)

	a.detailView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	a.detailView.SetBorder(false)

	a.lyricsView = tview.NewTextView().
		SetDynamicColors(false).
		SetScrollable(true).
		SetWrap(true)
	a.lyricsView.SetBorder(true).
		SetTitle(" Lyrics (l to close) ").
		SetBorderColor(tcell.ColorGray)

	coverWidth := a.cfg.UI.CoverWidth + 2
	a.playerFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(a.coverView, coverWidth, 0, false).
			AddItem(a.detailView, 0, 1, true), a.cfg.UI.CoverHeight+2, 0, true).
		AddItem(a.lyricsView, 0, 0, false)
	a.playerFlex.SetBorder(true).
		SetTitle(" Now Playing (ESC to go back) ").
		SetBorderColor(tcell.ColorDarkGreen)

	a.helpView = NewHelpView(a)

	a.pages = tview.NewPages().
		AddPage(pageList, a.trackTable, true, true).
		AddPage(pagePlayer, a.playerFlex, true, false).
		AddPage(pageHelp, a.helpModal(), true, false)

	a.rootFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.progressBar, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.renderStatus()
	a.tviewApp.SetRoot(a.rootFlex, true).
		EnableMouse(true).
		SetFocus(a.trackTable)
}

// setupTableHeaders sets up the table header row
func (a *App) setupTableHeaders() {
	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorGray).Attributes(tcell.AttrBold)

	for col, title := range []string{"", "#", "Title", "Artist", "Duration"} {
		a.trackTable.SetCell(0, col, tview.NewTableCell(title).
			SetStyle(headerStyle).
			SetSelectable(false))
	}
}

// setupInputHandlers sets up keyboard and mouse handlers
func (a *App) setupInputHandlers() {
	a.trackTable.SetSelectedFunc(func(row, column int) {
		a.clickTrack(row)
	})

	a.trackTable.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftClick {
			row, _ := a.trackTable.CellAt(event.Position())
			a.clickTrack(row)
		}
		return action, event
	})

	a.progressBar.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick || !a.hasCurrent {
			return action, event
		}
		x, _ := event.Position()
		bx, _, _, _ := a.progressBar.GetInnerRect()
		offset := x - bx
		if offset < 0 || offset >= a.cfg.UI.ProgressBarWidth {
			return action, event
		}
		percent := ClickPercent(offset, a.cfg.UI.ProgressBarWidth)
		a.dispatch(func() { a.ctrl.Seek(percent) })
		return action, nil
	})

	a.tviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if a.helpView.IsActive() {
			if event.Key() == tcell.KeyEscape || event.Rune() == '?' {
				a.helpView.Close()
				return nil
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyEscape:
			a.keys.ResetPending()
			a.handleEscape()
			return nil
		case tcell.KeyCtrlC:
			a.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case '?':
				a.keys.ResetPending()
				a.showHelp()
				return nil
			case 'q', 'Q':
				a.keys.ResetPending()
				a.Stop()
				return nil
			}
		}

		if a.keys.HandleKey(event) {
			return nil
		}
		return event
	})
}

// clickTrack loads the track shown in table row
func (a *App) clickTrack(row int) {
	index := row - 1
	if index < 0 || index >= len(a.tracks) || a.onTrackClick == nil {
		return
	}
	click := a.onTrackClick
	a.dispatch(func() { click(index) })
}

// renderTrackTable renders every track in current order
func (a *App) renderTrackTable() {
	for i := a.trackTable.GetRowCount() - 1; i > 0; i-- {
		a.trackTable.RemoveRow(i)
	}
	a.setupTableHeaders()

	rowStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDefault)
	for i, track := range a.tracks {
		row := i + 1

		a.trackTable.SetCell(row, 0, tview.NewTableCell(" ").
			SetStyle(rowStyle.Foreground(tcell.ColorLightGreen)))
		a.trackTable.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%d:", row)).
			SetStyle(rowStyle.Foreground(tcell.ColorLightGreen)).
			SetAlign(tview.AlignRight))
		a.trackTable.SetCell(row, 2, tview.NewTableCell(track.Title()).
			SetStyle(rowStyle).
			SetExpansion(1))
		a.trackTable.SetCell(row, 3, tview.NewTableCell(track.Artist()).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)).
			SetMaxWidth(20))
		a.trackTable.SetCell(row, 4, tview.NewTableCell(track.DurationLabel()).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)).
			SetAlign(tview.AlignRight))
	}

	a.renderMarkers()
	a.trackTable.ScrollToBeginning()
	if a.currentIndex >= 0 && a.currentIndex < len(a.tracks) {
		a.trackTable.Select(a.currentIndex+1, 0)
	}
}

// renderMarkers puts the now-playing marker on the loaded track's row
func (a *App) renderMarkers() {
	for i := range a.tracks {
		marker := " "
		if a.hasCurrent && i == a.currentIndex {
			marker = "▶"
		}
		if cell := a.trackTable.GetCell(i+1, 0); cell != nil {
			cell.SetText(marker)
		}
	}
}

// renderStatus redraws the indicator line and any notice
func (a *App) renderStatus() {
	text := FormatStatus(a.playing, a.shuffled, a.repeating, a.volume)
	if a.notice != "" {
		text += "  [yellow]" + tview.Escape(a.notice)
	}
	a.statusBar.SetText(text)
}

// helpModal centers the help view
func (a *App) helpModal() tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(a.helpView.GetContainer(), 60, 0, true).
			AddItem(nil, 0, 1, false), 24, 0, true).
		AddItem(nil, 0, 1, false)
}

// showHelp displays the help modal view
func (a *App) showHelp() {
	a.pages.ShowPage(pageHelp)
	a.helpView.Show()
}
