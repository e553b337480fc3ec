package costs

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shipshare.GO/api"
	costEntity "shipshare.GO/model/entity/cost"
	costRepo "shipshare.GO/model/repository/cost"
)

func init() {
	api.RegisterModule(RegisterCostRoutes)
}

// Legacy flat cost records, kept alongside the allocation tables for older
// tooling that still reads/writes them.
func RegisterCostRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/costs")
	repo := costRepo.NewCostRepository(db)

	g.GET("", func(c echo.Context) error {
		filters := costRepo.ListFilters{
			StartDate:    c.QueryParam("start_date"),
			EndDate:      c.QueryParam("end_date"),
			MerchantName: c.QueryParam("merchant_name"),
		}
		if raw := c.QueryParam("tracking_numbers"); raw != "" {
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					filters.TrackingNumbers = append(filters.TrackingNumbers, p)
				}
			}
		}

		rows, err := repo.List(filters)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": rows, "count": len(rows)})
	})

	g.POST("", func(c echo.Context) error {
		var rec costEntity.ShippingCost
		if err := c.Bind(&rec); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if rec.OrderNumber == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "order_number: required"})
		}

		id, err := repo.Save(&rec)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
	})

	g.PUT("/:id/settlement_status", func(c echo.Context) error {
		var body struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		if body.Status != costEntity.SettlementPending && body.Status != costEntity.SettlementSettled {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "status: unknown value"})
		}

		matched, err := repo.UpdateSettlementStatus(c.Param("id"), body.Status)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
		}
		if !matched {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "record not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
