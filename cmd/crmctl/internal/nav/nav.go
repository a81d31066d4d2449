// Package nav holds the console's navigation state machine: the active tab,
// at most one selected entity, and a one-shot global search hand-off.
package nav

import (
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
)

// InitialView is the tab shown after login.
const InitialView = "Dashboard"

// Kind identifies the rendered state.
type Kind int

const (
	ViewingList Kind = iota
	ViewingCustomerDetail
	ViewingClusterDetail
	ViewingOperatorDetail
)

func (k Kind) String() string {
	switch k {
	case ViewingList:
		return "list"
	case ViewingCustomerDetail:
		return "customer"
	case ViewingClusterDetail:
		return "cluster"
	case ViewingOperatorDetail:
		return "operator"
	default:
		return "unknown"
	}
}

// View is what the shell renders. Entity is set for detail kinds only.
type View struct {
	Kind   Kind
	Key    string
	Entity sdk.Record
}

// IsDetail reports whether the view renders a selected entity.
func (v View) IsDetail() bool { return v.Kind != ViewingList }

// State is a copy of the controller's fields.
type State struct {
	ActiveViewKey       string
	SelectedCustomer    sdk.Record
	SelectedCluster     sdk.Record
	SelectedOperator    sdk.Record
	PendingGlobalSearch string
}

// Controller is not safe for concurrent use; the console drives it from a
// single event loop.
type Controller struct {
	activeKey string
	selected  Kind
	entity    sdk.Record
	search    string
	hasSearch bool
}

// New returns a controller viewing the Dashboard list.
func New() *Controller {
	return &Controller{activeKey: InitialView, selected: ViewingList}
}

func (c *Controller) SelectCustomer(e sdk.Record) { c.selectEntity(ViewingCustomerDetail, e) }
func (c *Controller) SelectCluster(e sdk.Record)  { c.selectEntity(ViewingClusterDetail, e) }
func (c *Controller) SelectOperator(e sdk.Record) { c.selectEntity(ViewingOperatorDetail, e) }

// selectEntity replaces any earlier selection.
func (c *Controller) selectEntity(kind Kind, e sdk.Record) {
	if e == nil {
		e = sdk.Record{}
	}
	c.selected = kind
	c.entity = e
}

// Back clears the selection and returns to the last requested tab.
func (c *Controller) Back() {
	c.selected = ViewingList
	c.entity = nil
}

// SetActiveView records the tab. While a detail is shown the change takes
// effect on the next Back.
func (c *Controller) SetActiveView(key string) {
	if key == "" {
		return
	}
	c.activeKey = key
}

// SetGlobalSearch stores a value for the next detail view that reads it.
func (c *Controller) SetGlobalSearch(value string) {
	c.search = value
	c.hasSearch = value != ""
}

// TakeGlobalSearch returns the pending search and clears it.
func (c *Controller) TakeGlobalSearch() (string, bool) {
	if !c.hasSearch {
		return "", false
	}
	v := c.search
	c.search, c.hasSearch = "", false
	return v, true
}

// ActiveViewKey returns the tab key, including a deferred one.
func (c *Controller) ActiveViewKey() string { return c.activeKey }

// Current returns the view to render. A selection outranks the tab.
func (c *Controller) Current() View {
	if c.selected != ViewingList {
		return View{Kind: c.selected, Key: c.activeKey, Entity: c.entity}
	}
	return View{Kind: ViewingList, Key: c.activeKey}
}

// State returns a copy of every navigation field.
func (c *Controller) State() State {
	s := State{ActiveViewKey: c.activeKey, PendingGlobalSearch: c.search}
	switch c.selected {
	case ViewingCustomerDetail:
		s.SelectedCustomer = c.entity
	case ViewingClusterDetail:
		s.SelectedCluster = c.entity
	case ViewingOperatorDetail:
		s.SelectedOperator = c.entity
	}
	return s
}
