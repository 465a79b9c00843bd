package repository

import (
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListParams carries the list query already validated by the HTTP layer:
// page >= 1, limit in [1,100].
type ListParams struct {
	Page    int
	Limit   int
	Query   string
	SortBy  string
	Order   string
	Filters map[string]string
}

// buildListFilter turns equality filters and the substring search into a
// mongo filter. Collections with an active flag only list active records
// unless the request filters on that flag explicitly.
func buildListFilter(p ListParams, searchFields []string, activeField string) bson.M {
	filter := bson.M{}

	for k, v := range p.Filters {
		if k == activeField {
			if b, err := strconv.ParseBool(v); err == nil {
				filter[k] = b
				continue
			}
		}
		filter[k] = v
	}

	if activeField != "" {
		if _, ok := filter[activeField]; !ok {
			filter[activeField] = true
		}
	}

	if p.Query != "" && len(searchFields) > 0 {
		or := make([]bson.M, 0, len(searchFields))
		for _, f := range searchFields {
			or = append(or, bson.M{f: primitive.Regex{
				Pattern: regexp.QuoteMeta(p.Query),
				Options: "i",
			}})
		}
		filter["$or"] = or
	}

	return filter
}

// sortSpec resolves the sort order: an explicit sort_by is ascending unless
// order=desc and must be allow-listed; otherwise newest first.
func sortSpec(p ListParams, sortable map[string]bool) bson.D {
	if p.SortBy != "" && (len(sortable) == 0 || sortable[p.SortBy]) {
		dir := 1
		if p.Order == "desc" {
			dir = -1
		}
		return bson.D{{Key: p.SortBy, Value: dir}}
	}
	return bson.D{{Key: "created_at", Value: -1}}
}

// pageWindow computes the skip/limit pair for [(page-1)*limit, page*limit).
func pageWindow(page, limit int) (int64, int64) {
	return int64((page - 1) * limit), int64(limit)
}
