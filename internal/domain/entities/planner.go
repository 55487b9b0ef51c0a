package entities

import (
	"strconv"
)

// GoalCount is the number of six-month goals a planner holds
const GoalCount = 5

// Bounds for the index-addressed checklists
const (
	MaxGoalIndex   = GoalCount - 1
	MaxMonthlyItem = 5
	MinDay         = 1
	MaxDay         = 31
)

// MonthID identifies one month of the six-month planning window
type MonthID string

const (
	MonthFeb MonthID = "feb"
	MonthMar MonthID = "mar"
	MonthApr MonthID = "apr"
	MonthMay MonthID = "may"
	MonthJun MonthID = "jun"
	MonthJul MonthID = "jul"
)

// MonthIDs is the ordered planning window
var MonthIDs = []MonthID{MonthFeb, MonthMar, MonthApr, MonthMay, MonthJun, MonthJul}

// Valid reports whether m belongs to the planning window
func (m MonthID) Valid() bool {
	for _, id := range MonthIDs {
		if m == id {
			return true
		}
	}
	return false
}

// CheckMap is a sparse set of checkboxes; a missing key means unchecked
type CheckMap map[string]bool

// MonthChecks holds one CheckMap per month
type MonthChecks map[MonthID]CheckMap

// PlannerDocument is the single persisted planner state
type PlannerDocument struct {
	SixMonthGoals  [GoalCount]string `json:"sixMonthGoals"`
	SixMonthChecks CheckMap          `json:"sixMonthChecks"`
	MonthlyChecks  MonthChecks       `json:"monthlyChecks"`
	DateChecks     MonthChecks       `json:"dateChecks"`
}

// NewDefaultDocument returns the document used when nothing has been persisted yet
func NewDefaultDocument() *PlannerDocument {
	return &PlannerDocument{
		SixMonthChecks: DefaultGoalChecks(),
		MonthlyChecks:  EmptyMonthChecks(),
		DateChecks:     EmptyMonthChecks(),
	}
}

// DefaultGoalChecks returns every goal explicitly unchecked
func DefaultGoalChecks() CheckMap {
	checks := make(CheckMap, GoalCount)
	for i := 0; i < GoalCount; i++ {
		checks[strconv.Itoa(i)] = false
	}
	return checks
}

// EmptyMonthChecks returns a MonthChecks with an empty map for every month
func EmptyMonthChecks() MonthChecks {
	months := make(MonthChecks, len(MonthIDs))
	for _, id := range MonthIDs {
		months[id] = CheckMap{}
	}
	return months
}

// EnsureMonths adds an empty map for every month missing from mc.
// Existing months, including ones outside the window, are kept as they are.
func (mc MonthChecks) EnsureMonths() MonthChecks {
	if mc == nil {
		mc = make(MonthChecks, len(MonthIDs))
	}
	for _, id := range MonthIDs {
		if mc[id] == nil {
			mc[id] = CheckMap{}
		}
	}
	return mc
}

// EnsureShape fills in any missing map so every month and the goal checks
// are present.
func (d *PlannerDocument) EnsureShape() {
	if d.SixMonthChecks == nil {
		d.SixMonthChecks = DefaultGoalChecks()
	}
	d.MonthlyChecks = d.MonthlyChecks.EnsureMonths()
	d.DateChecks = d.DateChecks.EnsureMonths()
}

// Clone returns a deep copy of the check map
func (c CheckMap) Clone() CheckMap {
	if c == nil {
		return nil
	}
	out := make(CheckMap, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of every month's check map
func (mc MonthChecks) Clone() MonthChecks {
	if mc == nil {
		return nil
	}
	out := make(MonthChecks, len(mc))
	for id, checks := range mc {
		out[id] = checks.Clone()
	}
	return out
}

// Clone returns a deep copy of the document. Mutating the copy never
// reaches the original.
func (d *PlannerDocument) Clone() *PlannerDocument {
	return &PlannerDocument{
		SixMonthGoals:  d.SixMonthGoals,
		SixMonthChecks: d.SixMonthChecks.Clone(),
		MonthlyChecks:  d.MonthlyChecks.Clone(),
		DateChecks:     d.DateChecks.Clone(),
	}
}

// CheckUpdate describes how a checkbox changes: either flip the current
// value or set it to a fixed one. The zero value toggles.
type CheckUpdate struct {
	set   bool
	value bool
}

// Toggle flips the current value
func Toggle() CheckUpdate {
	return CheckUpdate{}
}

// SetTo sets the checkbox to v regardless of its current value
func SetTo(v bool) CheckUpdate {
	return CheckUpdate{set: true, value: v}
}

// CheckUpdateFrom maps an optional request field: nil toggles, anything else sets
func CheckUpdateFrom(checked *bool) CheckUpdate {
	if checked == nil {
		return Toggle()
	}
	return SetTo(*checked)
}

// IsToggle reports whether the update flips instead of setting
func (u CheckUpdate) IsToggle() bool {
	return !u.set
}

// Apply returns the value the checkbox holds after the update
func (u CheckUpdate) Apply(current bool) bool {
	if u.set {
		return u.value
	}
	return !current
}

func (u CheckUpdate) String() string {
	if u.IsToggle() {
		return "toggle"
	}
	return "set:" + strconv.FormatBool(u.value)
}
