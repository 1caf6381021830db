package handlers

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/apifeatures"
	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/httpresp"
	"github.com/trektide/trektide/internal/lifecycle"
)

// Resource is the generic CRUD surface shared by tours, users, reviews and
// bookings. Entity-specific behavior hangs off the stage lists and scopes;
// the verbs themselves never change.
type Resource[T any] struct {
	DB *gorm.DB

	// Shape whitelists the columns list requests may touch.
	Shape apifeatures.Whitelist

	// Scope narrows every read (secret tours, inactive users).
	Scope func(*gorm.DB) *gorm.DB

	// ListScope narrows list reads from request state (nested routes).
	ListScope func(*gin.Context, *gorm.DB) *gorm.DB

	Before      []lifecycle.Stage[T]
	After       []lifecycle.Stage[T]
	AfterDelete []lifecycle.Stage[T]

	// Preloads are the references resolved on single-record reads.
	Preloads []string
}

func (r *Resource[T]) base(c *gin.Context) *gorm.DB {
	q := r.DB.WithContext(c.Request.Context()).Model(new(T))
	if r.Scope != nil {
		q = r.Scope(q)
	}
	return q
}

func (r *Resource[T]) GetAll(c *gin.Context) {
	q := r.base(c)
	if r.ListScope != nil {
		q = r.ListScope(c, q)
	}

	shaped := apifeatures.New(q, c.Request.URL.Query(), r.Shape).
		Filter().
		Sort().
		LimitFields().
		Paginate().
		Query()

	var items []T
	if err := shaped.Find(&items).Error; err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.List(c, items)
}

func (r *Resource[T]) GetOne(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	q := r.base(c)
	for _, preload := range r.Preloads {
		q = q.Preload(preload)
	}

	var item T
	if err := q.First(&item, id).Error; err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Data(c, http.StatusOK, item)
}

func (r *Resource[T]) CreateOne(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		_ = c.Error(httperr.BadRequest("Invalid input data: " + err.Error()))
		return
	}

	ctx := c.Request.Context()
	if err := lifecycle.Run(ctx, r.DB, &item, r.Before); err != nil {
		_ = c.Error(err)
		return
	}

	if err := r.DB.WithContext(ctx).Create(&item).Error; err != nil {
		_ = c.Error(err)
		return
	}

	if err := lifecycle.Run(ctx, r.DB, &item, r.After); err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Data(c, http.StatusCreated, item)
}

func (r *Resource[T]) UpdateOne(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var item T
	if err := r.base(c).First(&item, id).Error; err != nil {
		_ = c.Error(err)
		return
	}

	// Decoding onto the loaded record makes the update partial: absent
	// fields keep their stored values.
	if err := c.ShouldBindJSON(&item); err != nil {
		_ = c.Error(httperr.BadRequest("Invalid input data: " + err.Error()))
		return
	}
	setPrimaryKey(&item, id)

	ctx := c.Request.Context()
	if err := lifecycle.Run(ctx, r.DB, &item, r.Before); err != nil {
		_ = c.Error(err)
		return
	}

	if err := r.DB.WithContext(ctx).Save(&item).Error; err != nil {
		_ = c.Error(err)
		return
	}

	if err := lifecycle.Run(ctx, r.DB, &item, r.After); err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Data(c, http.StatusOK, item)
}

func (r *Resource[T]) DeleteOne(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var item T
	if err := r.base(c).First(&item, id).Error; err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if err := r.DB.WithContext(ctx).Delete(&item).Error; err != nil {
		_ = c.Error(err)
		return
	}

	if err := lifecycle.Run(ctx, r.DB, &item, r.AfterDelete); err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.NoContent(c)
}

// setPrimaryKey pins the path ID back onto the record after binding, so a
// body carrying its own "id" cannot redirect the write.
func setPrimaryKey[T any](item *T, id uint) {
	field := reflect.ValueOf(item).Elem().FieldByName("ID")
	if field.IsValid() && field.CanSet() && field.Kind() == reflect.Uint {
		field.SetUint(uint64(id))
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(httperr.BadRequest("Invalid ID: " + c.Param("id")))
		return 0, false
	}
	return uint(id), true
}
