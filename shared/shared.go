package shared

import (
	"frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"strconv"
)

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// ParseID converts a path parameter into a positive row id.
func ParseID(value, notFoundMessage string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.NotFound(notFoundMessage) //nolint:wrapcheck
	}

	return id, nil
}
