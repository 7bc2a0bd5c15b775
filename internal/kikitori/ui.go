package kikitori

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sjzar/kikitori/internal/speech"
	"github.com/sjzar/kikitori/pkg/util"
)

const pageMain = "main"
const pageLoad = "load"

// UI is the tview front end: a control column with the status line on the
// left and the sentence panel on the right.
type UI struct {
	app      *tview.Application
	pages    *tview.Pages
	controls *tview.List
	panel    *tview.List
	status   *tview.TextView
	input    *tview.InputField

	session *Session
}

// NewUI builds the widget tree. Bind must be called before Run.
func NewUI() *UI {
	ui := &UI{
		app: tview.NewApplication(),
	}

	ui.status = tview.NewTextView()
	ui.status.SetDynamicColors(true)
	ui.status.SetBorder(true)
	ui.status.SetTitle(" Status ")

	ui.controls = tview.NewList()
	ui.controls.ShowSecondaryText(false)
	ui.controls.SetBorder(true)
	ui.controls.SetTitle(" kikitori ")
	ui.controls.AddItem("Load Audio", "", 'l', func() { ui.promptLoad() })
	ui.controls.AddItem("Transcribe", "", 't', func() { _ = ui.session.Transcribe() })
	ui.controls.AddItem("Play", "", 'p', func() { _ = ui.session.Play(0) })
	ui.controls.AddItem("Stop", "", 's', func() { ui.session.Stop() })
	ui.controls.AddItem("Quit", "", 'q', func() { ui.app.Stop() })

	ui.panel = tview.NewList()
	ui.panel.SetBorder(true)
	ui.panel.SetTitle(" Sentences ")
	ui.panel.SetSelectedFunc(func(i int, mainText, secondaryText string, shortcut rune) {
		_ = ui.session.PlaySegment(i)
	})

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.controls, 0, 1, true).
		AddItem(ui.status, 4, 0, false)

	main := tview.NewFlex().
		AddItem(left, 30, 0, true).
		AddItem(ui.panel, 0, 1, false)

	ui.input = tview.NewInputField()
	ui.input.SetLabel("Audio file: ")
	ui.input.SetFieldWidth(60)
	ui.input.SetBorder(true)
	ui.input.SetTitle(" Load Audio ")
	ui.input.SetDoneFunc(func(key tcell.Key) {
		path := ui.input.GetText()
		ui.pages.HidePage(pageLoad)
		ui.app.SetFocus(ui.controls)
		if key == tcell.KeyEnter && path != "" {
			_ = ui.session.LoadAudio(path)
		}
	})

	loadModal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(ui.input, 3, 0, true).
			AddItem(nil, 0, 1, false), 80, 0, true).
		AddItem(nil, 0, 1, false)

	ui.pages = tview.NewPages().
		AddPage(pageMain, main, true, true).
		AddPage(pageLoad, loadModal, true, false)

	ui.app.SetRoot(ui.pages, true)
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyTab {
			if ui.controls.HasFocus() {
				ui.app.SetFocus(ui.panel)
			} else {
				ui.app.SetFocus(ui.controls)
			}
			return nil
		}
		return event
	})

	return ui
}

// Bind attaches the session and points its dispatch at the tview event loop.
func (ui *UI) Bind(session *Session) {
	ui.session = session
	session.SetDispatch(ui.Dispatch)
}

// Dispatch marshals fn onto the UI loop and schedules a redraw.
func (ui *UI) Dispatch(fn func()) {
	ui.app.QueueUpdateDraw(fn)
}

// Run blocks until the application exits.
func (ui *UI) Run() error {
	return ui.app.Run()
}

// SetStatus implements View.
func (ui *UI) SetStatus(status string) {
	ui.status.SetText(status)
}

// SetTranscript implements View. The panel is rebuilt wholesale; transcripts
// are small enough that diffing would be pointless.
func (ui *UI) SetTranscript(segments []speech.Segment) {
	ui.panel.Clear()
	for _, seg := range segments {
		ui.panel.AddItem(seg.Text, util.FormatRange(seg.Start, seg.End), 0, nil)
	}
	ui.panel.ShowSecondaryText(true)
	if len(segments) > 0 {
		ui.panel.SetCurrentItem(0)
	}
}

func (ui *UI) promptLoad() {
	ui.input.SetText("")
	ui.pages.ShowPage(pageLoad)
	ui.app.SetFocus(ui.input)
}

var _ View = (*UI)(nil)
