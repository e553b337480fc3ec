package logistics

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shipshare.GO/api"
	allocationRepo "shipshare.GO/model/repository/allocation"
	allocationService "shipshare.GO/service/allocation"
)

func init() {
	api.RegisterModule(RegisterLogisticsRoutes)
}

func RegisterLogisticsRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/logistics")

	// POST /api/logistics/batch_update – per tracking number, update logistics
	// status and received count on all active detail rows under active mains.
	// Returns how many tracking numbers matched at least one row.
	g.POST("/batch_update", func(c echo.Context) error {
		var body struct {
			Details []allocationRepo.LogisticsUpdate `json:"details"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}

		op := c.Request().Header.Get("X-Operator")
		updated, err := allocationService.BatchUpdateLogistics(db, body.Details, op)
		if err != nil {
			if allocationService.IsValidation(err) {
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
			}
			if errors.Is(err, allocationService.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "record not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "updated": updated})
	})
}
