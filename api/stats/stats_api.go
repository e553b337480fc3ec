package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shipshare.GO/api"
	"shipshare.GO/config"
	"shipshare.GO/core/cache"
	allocationRepo "shipshare.GO/model/repository/allocation"
	allocationService "shipshare.GO/service/allocation"
)

func init() {
	api.RegisterModule(RegisterStatsRoutes)
}

// Cached aggregates are tagged so allocation writes can drop them; the Redis
// copy is not tag-indexed and relies on its short TTL instead.
const (
	localTTL = int64(300)
	redisTTL = 60 * time.Second
)

func cacheGet(key string) ([]byte, bool) {
	if config.RedisClient != nil {
		if b, err := config.RedisClient.Get(config.RedisCtx(), key).Bytes(); err == nil {
			return b, true
		}
		return nil, false
	}
	if v, ok := cache.GetInstance().Get(key); ok {
		if b, isBytes := v.([]byte); isBytes {
			return b, true
		}
	}
	return nil, false
}

func cacheSet(key string, payload []byte) {
	if config.RedisClient != nil {
		config.RedisClient.Set(config.RedisCtx(), key, payload, redisTTL)
		return
	}
	cache.GetInstance().Set(key, payload, localTTL, []string{allocationService.StatsCacheTag})
}

func respondCached(c echo.Context, key string, load func() (interface{}, error)) error {
	if b, ok := cacheGet(key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	data, err := load()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
	}
	body, err := json.Marshal(echo.Map{"success": true, "data": data})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
	}
	cacheSet(key, body)
	return c.JSONBlob(http.StatusOK, body)
}

func RegisterStatsRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/stats")
	repo := allocationRepo.NewAllocationRepository(db)

	// GET /api/stats/overview – overall rollup for an optional date range
	g.GET("/overview", func(c echo.Context) error {
		start, end := c.QueryParam("start_date"), c.QueryParam("end_date")
		key := "stats:overview|" + start + "|" + end
		return respondCached(c, key, func() (interface{}, error) {
			return repo.Statistics(start, end)
		})
	})

	// GET /api/stats/merchant_summary – per-merchant rollup
	g.GET("/merchant_summary", func(c echo.Context) error {
		merchant := c.QueryParam("merchant_name")
		start, end := c.QueryParam("start_date"), c.QueryParam("end_date")
		key := "stats:merchant|" + merchant + "|" + start + "|" + end
		return respondCached(c, key, func() (interface{}, error) {
			return repo.MerchantSummary(merchant, start, end)
		})
	})
}
