package main

import (
	"image/color"

	"github.com/milk9111/crimsonsky/common"
	"github.com/milk9111/crimsonsky/dialogue"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	uiWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	uiGold  = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func centeredPanel(minW, minH int) *widget.Container {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
}

func menuButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: uiWhite}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func centeredText(label string, face *ebtext.Face, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func anchoredRoot(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the centered pause menu with Resume and Restart buttons.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()

	panel := centeredPanel(common.ScreenWidth/2, common.ScreenHeight/2)
	panel.AddChild(centeredText("Paused", face, uiWhite))
	panel.AddChild(menuButton("Resume", face, func() { g.paused = false }))
	panel.AddChild(menuButton("Restart", face, func() {
		g.paused = false
		g.restart()
	}))

	return anchoredRoot(panel)
}

// NewVictoryUI builds the end screen shown after the final boss.
func NewVictoryUI(g *Game) *ebitenui.UI {
	face := uiFace()

	panel := centeredPanel(common.ScreenWidth/2, common.ScreenHeight/3)
	panel.AddChild(centeredText("VICTORY", face, uiGold))
	panel.AddChild(centeredText("The crimson sky begins to clear.", face, uiWhite))
	panel.AddChild(menuButton("Play Again", face, g.restart))

	return anchoredRoot(panel)
}

// DialogueUI is the bottom panel showing the current dialogue line.
type DialogueUI struct {
	UI      *ebitenui.UI
	speaker *widget.Text
	line    *widget.Text
	hint    *widget.Text
}

func NewDialogueUI() *DialogueUI {
	face := uiFace()
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 230})

	speaker := widget.NewText(widget.TextOpts.Text("", face, uiGold))
	line := widget.NewText(widget.TextOpts.Text("", face, uiWhite))
	hint := widget.NewText(widget.TextOpts.Text("", face, color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.ScreenWidth-40, 110),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	panel.AddChild(speaker)
	panel.AddChild(line)
	panel.AddChild(hint)

	return &DialogueUI{UI: anchoredRoot(panel), speaker: speaker, line: line, hint: hint}
}

// Sync copies the box's visible text into the widgets.
func (d *DialogueUI) Sync(box *dialogue.Box) {
	speaker, text := box.Text()
	d.speaker.Label = string(speaker)
	d.line.Label = text
	if box.Typing() {
		d.hint.Label = ""
	} else {
		d.hint.Label = "[SPACE / ENTER]"
	}
}
