package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildListFilter_EqualityFilters(t *testing.T) {
	p := ListParams{Filters: map[string]string{"brand_id": "b-1", "category_id": "c-1"}}

	filter := buildListFilter(p, nil, "")
	assert.Equal(t, bson.M{"brand_id": "b-1", "category_id": "c-1"}, filter)
}

func TestBuildListFilter_ActiveDefaultsTrue(t *testing.T) {
	filter := buildListFilter(ListParams{}, nil, "is_active")
	assert.Equal(t, bson.M{"is_active": true}, filter)
}

func TestBuildListFilter_ExplicitActiveOverride(t *testing.T) {
	p := ListParams{Filters: map[string]string{"is_active": "false"}}

	filter := buildListFilter(p, nil, "is_active")
	assert.Equal(t, bson.M{"is_active": false}, filter)
}

func TestBuildListFilter_SearchBuildsCaseInsensitiveOr(t *testing.T) {
	p := ListParams{Query: "phone"}

	filter := buildListFilter(p, []string{"name", "sku"}, "")
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)

	re, ok := or[0]["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "phone", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestBuildListFilter_SearchQuotesRegexMeta(t *testing.T) {
	p := ListParams{Query: "a.b(c"}

	filter := buildListFilter(p, []string{"name"}, "")
	or := filter["$or"].([]bson.M)
	re := or[0]["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\(c`, re.Pattern)
}

func TestSortSpec_DefaultNewestFirst(t *testing.T) {
	spec := sortSpec(ListParams{}, map[string]bool{"name": true})
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, spec)
}

func TestSortSpec_ExplicitAscending(t *testing.T) {
	spec := sortSpec(ListParams{SortBy: "name"}, map[string]bool{"name": true})
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, spec)
}

func TestSortSpec_Descending(t *testing.T) {
	spec := sortSpec(ListParams{SortBy: "name", Order: "desc"}, map[string]bool{"name": true})
	assert.Equal(t, bson.D{{Key: "name", Value: -1}}, spec)
}

func TestSortSpec_UnknownFieldFallsBack(t *testing.T) {
	spec := sortSpec(ListParams{SortBy: "password"}, map[string]bool{"name": true})
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, spec)
}

func TestPageWindow(t *testing.T) {
	skip, limit := pageWindow(2, 10)
	assert.Equal(t, int64(10), skip)
	assert.Equal(t, int64(10), limit)

	skip, limit = pageWindow(1, 20)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(20), limit)
}
