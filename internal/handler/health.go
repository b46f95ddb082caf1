package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/DvineConqueror/GroceryStorePOS/internal/infra"
)

// Health reports whether the register's backing services are reachable:
// Postgres (catalog, transactions), Redis (session push, job queues) and the
// media storage directory (product images, also where a full disk would
// first break product uploads). Any degraded dependency flips the response
// to 503 so the register UI can warn the cashier before a sale fails
// mid-checkout.
func Health(db *gorm.DB, rdb *redis.Client, media *infra.MediaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		database := "up"
		if db == nil {
			database = "down"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			database = "down"
		}

		redisState := "up"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisState = "down"
		}

		storage := "writable"
		if media == nil || media.Writable() != nil {
			storage = "unavailable"
		}

		status := http.StatusOK
		if database != "up" || redisState != "up" || storage != "writable" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"database": database,
			"redis":    redisState,
			"media":    storage,
		})
	}
}
