package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"restaurant/internal/pkg/errs"
)

// TableNumber is the table an order belongs to. Clients send it either as a
// JSON number or as a string typed into a form, so both are accepted.
type TableNumber int

// ParseTableNumber coerces the textual form of a table number. Trailing text
// such as "7a" is rejected, as are values outside the int32 range.
func ParseTableNumber(raw string) (TableNumber, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("table_number", fmt.Errorf("%q is not a number", raw))
	}
	return fromInt64(n)
}

func (t TableNumber) Int() int {
	return int(t)
}

func (t TableNumber) String() string {
	return strconv.Itoa(int(t))
}

// UnmarshalJSON accepts 7, 7.0 and "7".
func (t *TableNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseTableNumber(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("table_number", err)
	}
	if f != math.Trunc(f) {
		return errs.NewValueIsInvalidErrorWithCause("table_number", fmt.Errorf("%v is not a whole number", f))
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return errs.NewValueIsOutOfRangeError("table_number", f, math.MinInt32, math.MaxInt32)
	}
	*t = TableNumber(int(f))
	return nil
}

func fromInt64(n int64) (TableNumber, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errs.NewValueIsOutOfRangeError("table_number", n, math.MinInt32, math.MaxInt32)
	}
	return TableNumber(n), nil
}
