package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Model is the capability every stored entity provides: an id and
// server-managed timestamps.
type Model interface {
	DocID() string
	EnsureID()
	StampCreated(now time.Time)
	StampUpdated(now time.Time)
}

// Options configures a Repository per entity.
type Options struct {
	// SearchFields are matched with a case-insensitive substring search.
	SearchFields []string
	// UniqueFields are scanned for collisions at write time.
	UniqueFields []string
	// SortableFields allow-lists sort_by values; empty means any field.
	SortableFields []string
	// ActiveField names the soft-delete flag; empty means hard delete only.
	ActiveField string
	// OmitUpdatedAt skips stamping updated_at on writes (immutable-style
	// entities that carry no such field).
	OmitUpdatedAt bool
}

// Repository is the generic CRUD engine over one collection. Instances are
// constructed once at startup and passed to the handlers explicitly.
type Repository[T any, PT interface {
	Model
	*T
}] struct {
	coll          *mongo.Collection
	resource      string
	searchFields  []string
	uniqueFields  []string
	sortable      map[string]bool
	refChecks     []RefCheck
	activeField   string
	omitUpdatedAt bool
}

func New[T any, PT interface {
	Model
	*T
}](coll *mongo.Collection, resource string, opts Options) *Repository[T, PT] {
	sortable := make(map[string]bool, len(opts.SortableFields))
	for _, f := range opts.SortableFields {
		sortable[f] = true
	}
	return &Repository[T, PT]{
		coll:          coll,
		resource:      resource,
		searchFields:  opts.SearchFields,
		uniqueFields:  opts.UniqueFields,
		sortable:      sortable,
		activeField:   opts.ActiveField,
		omitUpdatedAt: opts.OmitUpdatedAt,
	}
}

// AddRefCheck registers a foreign-key existence check. Registration happens
// after construction so repositories can reference each other (and
// themselves, as categories do for their parent).
func (r *Repository[T, PT]) AddRefCheck(field, resource string, exists ExistsFunc) {
	r.refChecks = append(r.refChecks, RefCheck{Field: field, Resource: resource, Exists: exists})
}

func (r *Repository[T, PT]) Resource() string { return r.resource }

func (r *Repository[T, PT]) count(ctx context.Context, filter bson.M) (int64, error) {
	return r.coll.CountDocuments(ctx, filter)
}

// toDoc flattens an entity into bson.M so checks can inspect which fields
// are present.
func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create assigns id and timestamps when absent, runs uniqueness and
// reference checks, and persists the record. The check-then-insert sequence
// is not atomic; the store only guarantees per-document atomicity.
func (r *Repository[T, PT]) Create(ctx context.Context, doc PT) (PT, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc.EnsureID()
	doc.StampCreated(time.Now().UTC())

	raw, err := toDoc(doc)
	if err != nil {
		return nil, err
	}
	if err := runUniqueChecks(ctx, raw, doc.DocID(), r.uniqueFields, r.count); err != nil {
		return nil, err
	}
	if err := runRefChecks(ctx, raw, r.refChecks); err != nil {
		return nil, err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FindByID returns the record or ErrNotFound. Soft-deleted records are still
// reachable by id.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out T
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return PT(&out), nil
}

// Exists reports whether an id is present in the collection.
func (r *Repository[T, PT]) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List applies filters, search, sort and the page window, returning the page
// plus the total count of matching records before pagination.
func (r *Repository[T, PT]) List(ctx context.Context, p ListParams) ([]PT, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := buildListFilter(p, r.searchFields, r.activeField)

	// Count in parallel with the page query.
	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)
	go func() {
		total, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	skip, limit := pageWindow(p.Page, p.Limit)
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(sortSpec(p, r.sortable))

	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	items := make([]PT, 0, len(docs))
	for i := range docs {
		items = append(items, PT(&docs[i]))
	}

	var total int64
	select {
	case total = <-totalCh:
	case err := <-errCh:
		return nil, 0, err
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}

	return items, total, nil
}

// Update applies a partial patch. An empty patch is a no-op returning the
// current record without touching updated_at. A missing id resolves to
// ErrNotFound before any checks run; checks then cover only the patched
// fields, excluding the record itself from uniqueness scans.
func (r *Repository[T, PT]) Update(ctx context.Context, id string, patch bson.M) (PT, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return current, nil
	}

	if err := runUniqueChecks(ctx, patch, id, r.uniqueFields, r.count); err != nil {
		return nil, err
	}
	if err := runRefChecks(ctx, patch, r.refChecks); err != nil {
		return nil, err
	}
	if !r.omitUpdatedAt {
		patch["updated_at"] = time.Now().UTC()
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return PT(&out), nil
}

// Delete removes the record when hard is set or the entity has no active
// flag; otherwise it toggles the flag (soft delete and restore). The second
// return reports permanent removal.
func (r *Repository[T, PT]) Delete(ctx context.Context, id string, hard bool) (PT, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if hard || r.activeField == "" {
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, false, err
		}
		if res.DeletedCount == 0 {
			return nil, false, ErrNotFound
		}
		return nil, true, nil
	}

	var raw bson.M
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	cur, _ := raw[r.activeField].(bool)

	patch := bson.M{r.activeField: !cur, "updated_at": time.Now().UTC()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	return PT(&out), false, nil
}
