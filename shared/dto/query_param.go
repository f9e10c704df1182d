package dto

import (
	"frontdesk/shared/constant"
	"net/http"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// Only page and limit are read from the client; ordering is fixed by the caller
// because column names go into the query text.
//
//	q := &dto.QueryParams{SortBy: "timestamp,id", SortDir: dto.SortDirDesc}
//	q.FromRequest(req, true)
//
// With defaultRequest set, missing page and limit fall back to the package defaults.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortDir := queryParams.Get(constant.RequestParamSortDir); strings.ToUpper(sortDir) == SortDirAsc || strings.ToUpper(sortDir) == SortDirDesc {
		q.SortDir = strings.ToUpper(sortDir)
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// ClampLimit caps Limit at upper, and sets it to upper when unset.
func (q *QueryParams) ClampLimit(upper int) {
	if q.Limit <= 0 || q.Limit > upper {
		q.Limit = upper
	}
}

// Ordering renders the ORDER BY clause. SortBy may list several comma separated
// columns, each sorted in SortDir.
func (q *QueryParams) Ordering() string {
	if q.SortBy == "" || q.SortDir == "" {
		return ""
	}

	fields := strings.Split(q.SortBy, ",")
	for i, field := range fields {
		fields[i] = strings.TrimSpace(field) + " " + q.SortDir
	}

	return "ORDER BY " + strings.Join(fields, ", ")
}
