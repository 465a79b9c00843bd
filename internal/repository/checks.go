package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ExistsFunc reports whether the referenced id is present in some collection.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// RefCheck validates at write time that the id held in Field references an
// existing record of Resource.
type RefCheck struct {
	Field    string
	Resource string
	Exists   ExistsFunc
}

type countFunc func(ctx context.Context, filter bson.M) (int64, error)

// runUniqueChecks scans for collisions on each unique field present in doc,
// excluding the record identified by excludeID. A unique field explicitly set
// to the empty string is rejected rather than skipped, so a patch cannot
// clear it past the collision scan.
func runUniqueChecks(ctx context.Context, doc bson.M, excludeID string, fields []string, count countFunc) error {
	for _, field := range fields {
		v, ok := doc[field]
		if !ok || v == nil {
			continue
		}
		if v == "" {
			return &ValidationError{Field: field, Message: field + " cannot be empty"}
		}
		n, err := count(ctx, bson.M{field: v, "_id": bson.M{"$ne": excludeID}})
		if err != nil {
			return err
		}
		if n > 0 {
			return &ConflictError{Field: field}
		}
	}
	return nil
}

// runRefChecks verifies every registered reference field present in doc.
// Absent and empty references are skipped.
func runRefChecks(ctx context.Context, doc bson.M, checks []RefCheck) error {
	for _, rc := range checks {
		v, ok := doc[rc.Field]
		if !ok || v == nil {
			continue
		}
		id, _ := v.(string)
		if id == "" {
			continue
		}
		exists, err := rc.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &ValidationError{
				Field:   rc.Field,
				Message: fmt.Sprintf("%s %q does not exist", rc.Resource, id),
			}
		}
	}
	return nil
}
