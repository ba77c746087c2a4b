package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

const (
	orderingParam = "ordering"
	yearParam     = "year"

	invalidYearText = "expected YYYY-YYYY with consecutive years"
)

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind parses `?ordering=name,-code` (a leading "-" orders descending).
func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field != "" {
			ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
		}
	}
}

// bindYear returns the `year` query param, defaulting to the current academic year.
func bindYear(ctx echo.Context) (string, error) {
	year := strings.TrimSpace(ctx.QueryParam(yearParam))
	if year == "" {
		return udrf.CurrentAcademicYear(), nil
	}
	if !udrf.ValidAcademicYear(year) {
		return "", core.NewValidationError(nil, core.FieldError{Field: yearParam, Error: invalidYearText})
	}
	return year, nil
}

// bindDepartmentID parses the `:id` path param. Malformed ids are not found.
func bindDepartmentID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}
