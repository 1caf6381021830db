package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/apifeatures"
	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/httpresp"
	"github.com/trektide/trektide/internal/lifecycle"
	"github.com/trektide/trektide/internal/models"
	"github.com/trektide/trektide/internal/storage"
)

const (
	earthRadiusKm = 6371.0
	kmPerMile     = 1.609344
)

type TourHandler struct {
	Res   Resource[models.Tour]
	db    *gorm.DB
	store *storage.Store
}

func NewTourHandler(db *gorm.DB, store *storage.Store) *TourHandler {
	return &TourHandler{
		Res: Resource[models.Tour]{
			DB: db,
			Shape: apifeatures.Whitelist{
				Filter: []string{"duration", "max_group_size", "difficulty", "price", "ratings_average", "ratings_quantity"},
				Sort:   []string{"name", "duration", "price", "ratings_average", "ratings_quantity", "created_at"},
				Fields: []string{"id", "name", "slug", "duration", "max_group_size", "difficulty", "price", "ratings_average", "ratings_quantity", "summary"},
			},
			Scope: func(q *gorm.DB) *gorm.DB {
				// Secret tours never show up in default reads.
				return q.Where("secret_tour = ?", false)
			},
			Before:   lifecycle.TourBeforePersist(),
			Preloads: []string{"Locations", "Guides", "Reviews", "Reviews.User"},
		},
		db:    db,
		store: store,
	}
}

// AliasTopTours presets the shaping parameters for the top-5-cheap list.
func (h *TourHandler) AliasTopTours(c *gin.Context) {
	q := url.Values{}
	q.Set("limit", "5")
	q.Set("sort", "-ratings_average,price")
	q.Set("fields", "id,name,price,ratings_average,summary,difficulty")
	c.Request.URL.RawQuery = q.Encode()
	c.Next()
}

// UploadTourImages processes a multipart cover image plus gallery images
// and persists their object URLs before the JSON part of the update runs.
func (h *TourHandler) UploadTourImages(c *gin.Context) {
	if !strings.Contains(c.ContentType(), "multipart") {
		c.Next()
		return
	}

	id, ok := pathID(c)
	if !ok {
		c.Abort()
		return
	}

	ctx := c.Request.Context()
	var updates models.Tour

	if header, err := c.FormFile("image_cover"); err == nil {
		url, err := h.processTourImage(c, header, fmt.Sprintf("tours/tour-%d-%d-cover.webp", id, time.Now().UnixMilli()))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		updates.ImageCover = url
	}

	if form, err := c.MultipartForm(); err == nil {
		var urls []string
		for i, header := range form.File["images"] {
			url, err := h.processTourImage(c, header, fmt.Sprintf("tours/tour-%d-%d-%d.webp", id, time.Now().UnixMilli(), i+1))
			if err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
			urls = append(urls, url)
		}
		updates.Images = urls
	}

	if updates.ImageCover != "" || len(updates.Images) > 0 {
		if err := h.db.WithContext(ctx).
			Model(&models.Tour{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
	}

	// A multipart body has nothing for the JSON update path to decode;
	// the request is answered here.
	var tour models.Tour
	if err := h.db.WithContext(ctx).First(&tour, id).Error; err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	httpresp.Data(c, http.StatusOK, tour)
	c.Abort()
}

func (h *TourHandler) processTourImage(c *gin.Context, header *multipart.FileHeader, key string) (string, error) {
	data, err := readUpload(header)
	if err != nil {
		return "", err
	}

	processed, err := storage.ProcessImage(data, storage.TourImageWidth, storage.TourImageHeight)
	if err != nil {
		return "", httperr.BadRequest("Not an image. Please upload only images")
	}

	return h.store.Upload(c.Request.Context(), key, processed, "image/webp")
}

// --------- Aggregations ---------

type tourStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int64   `json:"num_tours"`
	NumRatings int64   `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

func (h *TourHandler) TourStats(c *gin.Context) {
	var stats []tourStats
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Tour{}).
		Select(`UPPER(difficulty) AS difficulty,
			COUNT(*) AS num_tours,
			SUM(ratings_quantity) AS num_ratings,
			AVG(ratings_average) AS avg_rating,
			AVG(price) AS avg_price,
			MIN(price) AS min_price,
			MAX(price) AS max_price`).
		Where("ratings_average >= ?", 4.5).
		Group("UPPER(difficulty)").
		Order("avg_price ASC").
		Scan(&stats).Error
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Data(c, http.StatusOK, gin.H{"stats": stats})
}

type monthPlan struct {
	Month         int      `json:"month"`
	NumTourStarts int      `json:"num_tour_starts"`
	Tours         []string `json:"tours"`
}

// MonthlyPlan buckets tour start dates of one year by month. Start dates
// live in a JSON column, so the unwind happens here rather than in SQL.
func (h *TourHandler) MonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		_ = c.Error(httperr.BadRequest("Invalid year: " + c.Param("year")))
		return
	}

	var tours []models.Tour
	if err := h.db.WithContext(c.Request.Context()).
		Select("name", "start_dates").
		Where("secret_tour = ?", false).
		Find(&tours).Error; err != nil {
		_ = c.Error(err)
		return
	}

	byMonth := map[int]*monthPlan{}
	for _, tour := range tours {
		for _, start := range tour.StartDates {
			if start.Year() != year {
				continue
			}
			month := int(start.Month())
			if byMonth[month] == nil {
				byMonth[month] = &monthPlan{Month: month}
			}
			byMonth[month].NumTourStarts++
			byMonth[month].Tours = append(byMonth[month].Tours, tour.Name)
		}
	}

	plan := make([]monthPlan, 0, len(byMonth))
	for _, entry := range byMonth {
		plan = append(plan, *entry)
	}
	sort.Slice(plan, func(i, j int) bool {
		return plan[i].NumTourStarts > plan[j].NumTourStarts
	})

	httpresp.Data(c, http.StatusOK, gin.H{"plan": plan})
}

// --------- Geo queries ---------

// haversineExpr computes the great-circle distance in km between the
// tour's start location and a point; placeholders are lat, lng, lat.
const haversineExpr = `(? * acos(
	cos(radians(?)) * cos(radians(start_lat)) * cos(radians(start_lng) - radians(?))
	+ sin(radians(?)) * sin(radians(start_lat))
))`

func (h *TourHandler) ToursWithin(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		_ = c.Error(httperr.BadRequest("Invalid distance: " + c.Param("distance")))
		return
	}

	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	radiusKm := distance
	if c.Param("unit") == "mi" {
		radiusKm = distance * kmPerMile
	}

	var tours []models.Tour
	err = h.db.WithContext(c.Request.Context()).
		Where("secret_tour = ?", false).
		Where(haversineExpr+" <= ?", earthRadiusKm, lat, lng, lat, radiusKm).
		Find(&tours).Error
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.List(c, tours)
}

type tourDistance struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

func (h *TourHandler) Distances(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	multiplier := 1.0
	if c.Param("unit") == "mi" {
		multiplier = 1 / kmPerMile
	}

	var distances []tourDistance
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Tour{}).
		Select("name, "+haversineExpr+" * ? AS distance", earthRadiusKm, lat, lng, lat, multiplier).
		Where("secret_tour = ?", false).
		Order("distance ASC").
		Scan(&distances).Error
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Data(c, http.StatusOK, gin.H{"distances": distances})
}

func parseLatLng(c *gin.Context) (lat, lng float64, ok bool) {
	parts := strings.SplitN(c.Param("latlng"), ",", 2)
	if len(parts) != 2 {
		_ = c.Error(httperr.BadRequest("Please provide latitude and longitude in the format lat,lng"))
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		_ = c.Error(httperr.BadRequest("Please provide latitude and longitude in the format lat,lng"))
		return 0, 0, false
	}

	return lat, lng, true
}
