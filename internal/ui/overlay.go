package ui

import "github.com/ehfeng/querycrafter/internal/results"

// Overlay identifies one of the modal layers that can pre-empt component
// input, ordered by precedence (§4.2: "Error banner -> Help -> Table-info
// popup -> Preview popup -> Autocomplete popup -> component body").
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayError
	OverlayHelp
	OverlayTableInfo
	OverlayPreview
	OverlayRowDetails
	OverlayAutocomplete
)

// overlayPrecedence is the ordered predicate list §9 asks for ("implement
// as an ordered list of overlay predicates short-circuiting input routing;
// do not scatter if show_X checks across components"). Active reports
// which overlay (if any) is showing for a given app state; ActiveOverlay
// walks the list highest-precedence first.
type overlayPredicate struct {
	kind   Overlay
	active func(*App) bool
}

func overlayPredicates() []overlayPredicate {
	return []overlayPredicate{
		{OverlayError, func(a *App) bool { return a.errorMsg != "" }},
		{OverlayHelp, func(a *App) bool { return a.showHelp }},
		{OverlayTableInfo, func(a *App) bool { return a.showTableInfo }},
		{OverlayPreview, func(a *App) bool { return a.db.Nav.Mode == results.Preview }},
		{OverlayRowDetails, func(a *App) bool { return a.showRowDetails }},
		{OverlayAutocomplete, func(a *App) bool { return a.showAutocomplete }},
	}
}

// ActiveOverlay returns the highest-precedence overlay currently showing,
// or OverlayNone if the component body should receive input.
func (a *App) ActiveOverlay() Overlay {
	for _, p := range overlayPredicates() {
		if p.active(a) {
			return p.kind
		}
	}
	return OverlayNone
}
