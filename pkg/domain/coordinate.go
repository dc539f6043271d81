package domain

import (
	"fmt"
	"strconv"

	dErrors "inplab/pkg/domain-errors"
)

// WellCoordinate is the human-readable position of a well on one tray,
// e.g. "A1": the letter is the row (A=1), the number is the column.
// Both components are 1-based.
type WellCoordinate struct {
	Row int
	Col int
}

// ParseCoordinate parses an "A1"-style coordinate. The row letter must be
// an uppercase ASCII letter; rows beyond Z are unsupported.
func ParseCoordinate(s string) (WellCoordinate, error) {
	if len(s) < 2 {
		return WellCoordinate{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"invalid coordinate format, must be like 'A1', provided: %q", s)
	}
	letter := s[0]
	if letter < 'A' || letter > 'Z' {
		return WellCoordinate{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"invalid coordinate row letter in %q", s)
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil || col < 1 {
		return WellCoordinate{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"invalid coordinate column number in %q", s)
	}
	return WellCoordinate{Row: int(letter-'A') + 1, Col: col}, nil
}

// String renders the coordinate back to "A1" form. Rows outside A–Z render
// as "?" rather than panicking; such coordinates never pass validation on
// the way in.
func (c WellCoordinate) String() string {
	if c.Row < 1 || c.Row > 26 || c.Col < 1 {
		return fmt.Sprintf("?%d", c.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+c.Row-1, c.Col)
}
