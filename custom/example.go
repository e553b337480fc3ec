package custom

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"shipshare.GO/api"
	"shipshare.GO/cmd"
	"shipshare.GO/config"
	"shipshare.GO/cron"
	gqlregistry "shipshare.GO/graphql/registry"
	allocationEntity "shipshare.GO/model/entity/allocation"
	allocationRepo "shipshare.GO/model/repository/allocation"
)

func init() {
	// GraphQL extensions
	gqlregistry.Register("ping", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "ok"}, nil
	})
	gqlregistry.Register("logistics_statuses", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return []string{
			allocationEntity.LogisticsInTransit,
			allocationEntity.LogisticsReceived,
			allocationEntity.LogisticsException,
		}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "allocations:stats",
		Short: "Print the overall allocation rollup",
		Run: func(c *cobra.Command, args []string) {
			db, err := config.NewDB()
			if err != nil {
				fmt.Printf("Database connection failed: %v\n", err)
				return
			}
			stats, err := allocationRepo.NewAllocationRepository(db).Statistics("", "")
			if err != nil {
				fmt.Printf("Statistics failed: %v\n", err)
				return
			}
			fmt.Printf("Active allocations: %d\nTotal weight:       %.3f\nTotal amount:       %.2f\n",
				stats.TotalRecords, stats.TotalWeight, stats.TotalAmount)
		},
	})

	// Cron job
	cron.Register("heartbeat", "@every 1m", func(args ...string) {
		fmt.Println("shipshare heartbeat", args)
	})

	// HTTP route with DB access: count of active allocations
	api.RegisterRoute(func(e *echo.Echo, db *gorm.DB) {
		e.GET("/custom/active_count", func(c echo.Context) error {
			if db == nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "message": "no database"})
			}
			var count int64
			err := db.Model(&allocationEntity.AllocationMain{}).
				Where("status = ?", allocationEntity.StatusActive).
				Count(&count).Error
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
			}
			return c.JSON(http.StatusOK, echo.Map{"success": true, "active": count})
		})
	})
}
