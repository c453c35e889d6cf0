package controller

import "github.com/elsanchez/bakraload/internal/domain"

// Tab identifies a view of the dashboard.
type Tab int

const (
	TabSingle Tab = iota
	TabBulk
	TabDownloads
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabSingle, TabBulk, TabDownloads}

func (t Tab) String() string {
	switch t {
	case TabSingle:
		return "Single"
	case TabBulk:
		return "Bulk"
	case TabDownloads:
		return "Downloads"
	default:
		return "Unknown"
	}
}

// ActiveTab returns the tab currently shown.
func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// SwitchTab makes t the only active tab. It returns true when the caller
// should refresh the listing.
func (c *Controller) SwitchTab(t Tab) bool {
	if t < TabSingle || t > TabDownloads {
		return false
	}

	c.mu.Lock()
	prev := c.tab
	c.tab = t
	c.mu.Unlock()

	c.logger.Debug("switch tab", "from", prev.String(), "to", t.String())
	return t == TabDownloads && c.listing
}

// ControlID names a triggering control.
type ControlID string

const (
	ControlSingle  ControlID = "single"
	ControlBulk    ControlID = "bulk"
	ControlRefresh ControlID = "refresh"
	ControlClear   ControlID = "clear"
)

// Control is a button-like trigger that is disabled while its call is in flight.
type Control struct {
	ID        ControlID
	IdleLabel string
	Label     string
	Busy      bool
}

func newControls() map[ControlID]*Control {
	controls := map[ControlID]*Control{
		ControlSingle:  {ID: ControlSingle, IdleLabel: "Download"},
		ControlBulk:    {ID: ControlBulk, IdleLabel: "Download All"},
		ControlRefresh: {ID: ControlRefresh, IdleLabel: "Refresh"},
		ControlClear:   {ID: ControlClear, IdleLabel: "Clear All"},
	}
	for _, ctl := range controls {
		ctl.Label = ctl.IdleLabel
	}
	return controls
}

// Control returns a snapshot of the control.
func (c *Controller) Control(id ControlID) Control {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctl, ok := c.controls[id]; ok {
		return *ctl
	}
	return Control{ID: id}
}

// AnyBusy reports whether some control has a call in flight.
func (c *Controller) AnyBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ctl := range c.controls {
		if ctl.Busy {
			return true
		}
	}
	return false
}

// begin marks the control busy with label. Fails with ErrBusy when a call
// is already in flight for it.
func (c *Controller) begin(id ControlID, label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctl := c.controls[id]
	if ctl.Busy {
		return domain.ErrBusy
	}
	ctl.Busy = true
	ctl.Label = label
	return nil
}

// end restores the idle state. Always deferred right after a successful begin.
func (c *Controller) end(id ControlID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctl := c.controls[id]
	ctl.Busy = false
	ctl.Label = ctl.IdleLabel
}
