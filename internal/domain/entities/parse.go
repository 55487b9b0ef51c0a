package entities

import (
	"strconv"
	"strings"
)

// Messages returned to clients for rejected input
const (
	MsgGoalIndex   = "Index must be 0-4"
	MsgItemIndex   = "Item index must be 0-5"
	MsgDay         = "Day must be 1-31"
	MsgMonthID     = "Invalid monthId. Use: feb, mar, apr, may, jun, jul"
	MsgTextBody    = "Body must include text (string)"
	MsgCheckedBody = "Body may include checked (boolean)"
)

// ParseGoalIndex parses a path segment into a goal index in [0, 4]
func ParseGoalIndex(raw string) (int, error) {
	return parseBounded(raw, 0, MaxGoalIndex, "index", MsgGoalIndex, ErrInvalidGoalIndex)
}

// ParseItemIndex parses a path segment into a monthly item index in [0, 5]
func ParseItemIndex(raw string) (int, error) {
	return parseBounded(raw, 0, MaxMonthlyItem, "itemIndex", MsgItemIndex, ErrInvalidItemIndex)
}

// ParseDay parses a path segment into a day of month in [1, 31]
func ParseDay(raw string) (int, error) {
	return parseBounded(raw, MinDay, MaxDay, "day", MsgDay, ErrInvalidDay)
}

// ParseMonthID checks raw against the planning window
func ParseMonthID(raw string) (MonthID, error) {
	id := MonthID(raw)
	if err := ValidateMonthID(id); err != nil {
		return "", err
	}
	return id, nil
}

// ValidateMonthID checks an already-typed month id
func ValidateMonthID(id MonthID) error {
	if !id.Valid() {
		return &ValidationError{Field: "monthId", Message: MsgMonthID, Err: ErrInvalidMonth}
	}
	return nil
}

// ValidateGoalIndex checks an already-parsed goal index
func ValidateGoalIndex(index int) error {
	return checkBounds(index, 0, MaxGoalIndex, "index", MsgGoalIndex, ErrInvalidGoalIndex)
}

// ValidateItemIndex checks an already-parsed monthly item index
func ValidateItemIndex(index int) error {
	return checkBounds(index, 0, MaxMonthlyItem, "itemIndex", MsgItemIndex, ErrInvalidItemIndex)
}

// ValidateDay checks an already-parsed day
func ValidateDay(day int) error {
	return checkBounds(day, MinDay, MaxDay, "day", MsgDay, ErrInvalidDay)
}

// parseBounded accepts only a plain base-10 integer; signs, spaces and
// trailing garbage are rejected rather than trimmed.
func parseBounded(raw string, min, max int, field, msg string, sentinel error) (int, error) {
	if raw == "" || strings.ContainsAny(raw, "+ \t") {
		return 0, &ValidationError{Field: field, Message: msg, Err: sentinel}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: msg, Err: sentinel}
	}
	if err := checkBounds(n, min, max, field, msg, sentinel); err != nil {
		return 0, err
	}
	return n, nil
}

func checkBounds(n, min, max int, field, msg string, sentinel error) error {
	if n < min || n > max {
		return &ValidationError{Field: field, Message: msg, Err: sentinel}
	}
	return nil
}
