package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/skyscape/ecs/component"
)

// pageToggle is one page interaction the panel can flip.
type pageToggle struct {
	name string
	get  func(p component.PageState) bool
	flip func(p *component.PageState)
	btn  *widget.Button
	on   bool
}

// ControlPanel is a small overlay standing in for the portfolio page's
// hover targets and modals.
type ControlPanel struct {
	ui      *ebitenui.UI
	toggles []*pageToggle
	status  *widget.Text
	target  *widget.Text
	synced  bool
}

func NewControlPanel(g *Game) *ControlPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x14, B: 0x20, A: 180})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x40, A: 230}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x5c, A: 230}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x26, G: 0x28, B: 0x2a, A: 230}),
	}
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	cp := &ControlPanel{
		toggles: []*pageToggle{
			{
				name: "Lore hover [L]",
				get:  func(p component.PageState) bool { return p.LoreHover },
				flip: func(p *component.PageState) { p.LoreHover = !p.LoreHover },
			},
			{
				name: "About open [A]",
				get:  func(p component.PageState) bool { return p.AboutOpen },
				flip: func(p *component.PageState) { p.AboutOpen = !p.AboutOpen },
			},
			{
				name: "Case study hover [H]",
				get:  func(p component.PageState) bool { return p.CaseStudyHover },
				flip: func(p *component.PageState) { p.CaseStudyHover = !p.CaseStudyHover },
			},
			{
				name: "Case study open [C]",
				get:  func(p component.PageState) bool { return p.CaseStudyOpen },
				flip: func(p *component.PageState) { p.CaseStudyOpen = !p.CaseStudyOpen },
			},
		},
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)

	cp.target = widget.NewText(
		widget.TextOpts.Text("sky", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
	)
	panel.AddChild(cp.target)

	for _, t := range cp.toggles {
		t := t
		t.btn = widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(toggleLabel(t.name, false), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(220, 24),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.togglePage(t.flip)
			}),
		)
		panel.AddChild(t.btn)
	}

	tourBtn := widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Play / pause tour [T]", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.toggleTour()
		}),
	)
	panel.AddChild(tourBtn)

	cp.status = widget.NewText(
		widget.TextOpts.Text("no tour", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
	)
	panel.AddChild(cp.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	cp.ui = &ebitenui.UI{Container: root}
	return cp
}

func (cp *ControlPanel) UI() *ebitenui.UI {
	if cp == nil {
		return nil
	}
	return cp.ui
}

// Sync relabels the buttons and the status lines from the current page.
func (cp *ControlPanel) Sync(page component.PageState, tourStatus string) {
	if cp == nil {
		return
	}
	for _, t := range cp.toggles {
		on := t.get(page)
		if cp.synced && on == t.on {
			continue
		}
		t.on = on
		if text := t.btn.Text(); text != nil {
			text.Label = toggleLabel(t.name, on)
		}
	}
	cp.synced = true
	cp.target.Label = "background: " + component.ResolveTarget(page.Inputs()).String()
	cp.status.Label = tourStatus
}

func toggleLabel(name string, on bool) string {
	if on {
		return name + ": On"
	}
	return name + ": Off"
}
