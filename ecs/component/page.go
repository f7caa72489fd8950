package component

// PageState mirrors the page interactions that drive the background: hovering
// the lore and case-study cards and the two content modals.
type PageState struct {
	LoreHover      bool
	AboutOpen      bool
	CaseStudyHover bool
	CaseStudyOpen  bool
}

// Inputs derives the background flags. The About Me modal keeps the galaxy up
// even after the pointer leaves the lore card.
func (p PageState) Inputs() BackgroundInputs {
	return BackgroundInputs{
		ShowGalaxy:         p.LoreHover || p.AboutOpen,
		ShowGradient:       p.CaseStudyHover,
		ShowCaseStudyModal: p.CaseStudyOpen,
	}
}
