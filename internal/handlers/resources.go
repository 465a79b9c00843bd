package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"wholesale-catalog/internal/cache"
	"wholesale-catalog/internal/models"
)

// Set bundles every handler for route registration. Instances are built in
// main and passed down explicitly.
type Set struct {
	Products   *ProductHandler
	Brands     *CrudHandler[models.Brand, *models.Brand]
	Categories *CrudHandler[models.Category, *models.Category]
	Stores     *CrudHandler[models.Store, *models.Store]
	Warehouses *CrudHandler[models.Warehouse, *models.Warehouse]
	Users      *CrudHandler[models.User, *models.User]
	Files      *CrudHandler[models.File, *models.File]
	Upload     *UploadHandler
}

// evictProductViews invalidates the cached composed product views whenever a
// resource they embed changes, keeping reads after a related write current.
func evictProductViews(views cache.Cache) func(c *gin.Context) {
	return func(c *gin.Context) {
		_ = views.DeleteByPrefix(c.Request.Context(), "products:")
	}
}

func NewBrandHandler(store Store[models.Brand, *models.Brand], views cache.Cache) *CrudHandler[models.Brand, *models.Brand] {
	return &CrudHandler[models.Brand, *models.Brand]{
		Store:      store,
		Resource:   "brand",
		Filters:    []string{"name", "country"},
		AfterWrite: evictProductViews(views),
		BindPatch: func(c *gin.Context) (bson.M, error) {
			var u models.BrandUpdate
			if err := c.ShouldBindJSON(&u); err != nil {
				return nil, err
			}
			return u.Patch(), nil
		},
	}
}

func NewCategoryHandler(store Store[models.Category, *models.Category], views cache.Cache) *CrudHandler[models.Category, *models.Category] {
	return &CrudHandler[models.Category, *models.Category]{
		Store:      store,
		Resource:   "category",
		Filters:    []string{"name", "parent_id"},
		AfterWrite: evictProductViews(views),
		BindPatch: func(c *gin.Context) (bson.M, error) {
			var u models.CategoryUpdate
			if err := c.ShouldBindJSON(&u); err != nil {
				return nil, err
			}
			return u.Patch(), nil
		},
	}
}

func NewStoreHandler(store Store[models.Store, *models.Store], views cache.Cache) *CrudHandler[models.Store, *models.Store] {
	return &CrudHandler[models.Store, *models.Store]{
		Store:      store,
		Resource:   "store",
		Filters:    []string{"name", "owner_id"},
		AfterWrite: evictProductViews(views),
		BindPatch: func(c *gin.Context) (bson.M, error) {
			var u models.StoreUpdate
			if err := c.ShouldBindJSON(&u); err != nil {
				return nil, err
			}
			return u.Patch(), nil
		},
	}
}

func NewWarehouseHandler(store Store[models.Warehouse, *models.Warehouse], views cache.Cache) *CrudHandler[models.Warehouse, *models.Warehouse] {
	return &CrudHandler[models.Warehouse, *models.Warehouse]{
		Store:      store,
		Resource:   "warehouse",
		Filters:    []string{"name", "location", "manager_id"},
		AfterWrite: evictProductViews(views),
		BindPatch: func(c *gin.Context) (bson.M, error) {
			var u models.WarehouseUpdate
			if err := c.ShouldBindJSON(&u); err != nil {
				return nil, err
			}
			return u.Patch(), nil
		},
	}
}

func NewUserHandler(store Store[models.User, *models.User]) *CrudHandler[models.User, *models.User] {
	return &CrudHandler[models.User, *models.User]{
		Store:    store,
		Resource: "user",
		Filters:  []string{"role", "email", "is_active"},
		Defaults: func(u *models.User) {
			if u.IsActive == nil {
				active := true
				u.IsActive = &active
			}
		},
		BindPatch: func(c *gin.Context) (bson.M, error) {
			var u models.UserUpdate
			if err := c.ShouldBindJSON(&u); err != nil {
				return nil, err
			}
			return u.Patch(), nil
		},
	}
}

func NewFileHandler(store Store[models.File, *models.File], views cache.Cache) *CrudHandler[models.File, *models.File] {
	return &CrudHandler[models.File, *models.File]{
		Store:      store,
		Resource:   "file",
		Filters:    []string{"content_type"},
		AfterWrite: evictProductViews(views),
		BindPatch: func(c *gin.Context) (bson.M, error) {
			var u models.FileUpdate
			if err := c.ShouldBindJSON(&u); err != nil {
				return nil, err
			}
			return u.Patch(), nil
		},
	}
}
