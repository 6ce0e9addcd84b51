package views

// View names one way of presenting the record collection.
type View int

const (
	ViewByDocType View = iota
	ViewTimeline
	ViewByProvider
	ViewByMedication
	ViewDoctorNotes
)

// InMore reports whether the view lives behind the "more views" disclosure.
func (v View) InMore() bool {
	switch v {
	case ViewByProvider, ViewByMedication, ViewDoctorNotes:
		return true
	}
	return false
}

func (v View) String() string {
	switch v {
	case ViewByDocType:
		return "doctype"
	case ViewTimeline:
		return "timeline"
	case ViewByProvider:
		return "provider"
	case ViewByMedication:
		return "medication"
	case ViewDoctorNotes:
		return "doctorNote"
	}
	return "unknown"
}

// Navigator tracks the single active view and the open/closed state of the
// secondary "more views" disclosure. The two are orthogonal: toggling the
// disclosure never changes the active view, and selecting any view (even the
// one already active) closes the disclosure.
type Navigator struct {
	active   View
	moreOpen bool
}

// NewNavigator starts on the by-document-type view with the disclosure closed.
func NewNavigator() *Navigator {
	return &Navigator{active: ViewByDocType}
}

// Active returns the currently selected view.
func (n *Navigator) Active() View { return n.active }

// MoreOpen reports whether the disclosure is open.
func (n *Navigator) MoreOpen() bool { return n.moreOpen }

// Select activates the given view and closes the disclosure.
func (n *Navigator) Select(v View) {
	n.active = v
	n.moreOpen = false
}

// ToggleMore flips the disclosure without touching the active view.
func (n *Navigator) ToggleMore() {
	n.moreOpen = !n.moreOpen
}
