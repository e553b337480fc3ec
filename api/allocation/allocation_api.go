package allocation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shipshare.GO/api"
	allocationRepo "shipshare.GO/model/repository/allocation"
	allocationService "shipshare.GO/service/allocation"
)

func init() {
	api.RegisterModule(RegisterAllocationRoutes)
}

// operator is the identity recorded on history rows. The auth layer in front
// of /api forwards it; "system" otherwise.
func operator(c echo.Context) string {
	if v := c.Request().Header.Get("X-Operator"); v != "" {
		return v
	}
	return "system"
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fail(c echo.Context, err error) error {
	if allocationService.IsValidation(err) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	}
	if errors.Is(err, allocationService.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "record not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
}

func RegisterAllocationRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/allocations")

	// POST /api/allocations – submit (validate, calculate, upsert by order number)
	g.POST("", func(c echo.Context) error {
		var req allocationService.SubmitRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		req.Operator = operator(c)

		mainID, err := allocationService.Submit(db, req)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "main_id": mainID})
	})

	// GET /api/allocations – filtered list of active allocations
	g.GET("", func(c echo.Context) error {
		filters := allocationRepo.ListFilters{
			StartDate:         c.QueryParam("start_date"),
			EndDate:           c.QueryParam("end_date"),
			OrderNumbers:      splitCSV(c.QueryParam("order_numbers")),
			OrderNumberPrefix: c.QueryParam("order_number_prefix"),
			TrackingNumbers:   splitCSV(c.QueryParam("tracking_numbers")),
		}
		// single tracking_number kept for older clients
		if len(filters.TrackingNumbers) == 0 {
			if tn := c.QueryParam("tracking_number"); tn != "" {
				filters.TrackingNumbers = []string{tn}
			}
		}

		repo := allocationRepo.NewAllocationRepository(db)
		rows, err := repo.List(filters)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": rows, "count": len(rows)})
	})

	// GET /api/allocations/:order_number – direct lookup, soft-deleted rows included
	g.GET("/:order_number", func(c echo.Context) error {
		repo := allocationRepo.NewAllocationRepository(db)
		row, err := repo.GetByOrderNumber(c.Param("order_number"))
		if err != nil {
			return fail(c, err)
		}
		if row == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "record not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": row})
	})

	// PUT /api/allocations/:order_number – main-level fields only
	g.PUT("/:order_number", func(c echo.Context) error {
		var req allocationService.UpdateFieldsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		req.Operator = operator(c)

		mainID, err := allocationService.UpdateMainFields(db, c.Param("order_number"), req)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "main_id": mainID})
	})

	// DELETE /api/allocations/:id – soft delete by main id
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "id must be an integer"})
		}
		if err := allocationService.Delete(db, uint(id), operator(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	// GET /api/allocations/:order_number/history – append-only audit trail
	g.GET("/:order_number/history", func(c echo.Context) error {
		repo := allocationRepo.NewAllocationRepository(db)
		row, err := repo.GetByOrderNumber(c.Param("order_number"))
		if err != nil {
			return fail(c, err)
		}
		if row == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "record not found"})
		}
		history, err := repo.History(row.ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": history, "count": len(history)})
	})
}
