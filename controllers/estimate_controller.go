package controllers

import (
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"repair-app/pricing"
	"repair-app/repositories"
)

type EstimateController struct {
	DB     *gorm.DB
	Config pricing.Config
}

func NewEstimateController(DB *gorm.DB) *EstimateController {
	return &EstimateController{DB: DB, Config: pricing.DefaultConfig()}
}

type vendorComparison struct {
	Vendor string   `json:"vendor"`
	Cost   *float64 `json:"cost"`
	Mhr    *float64 `json:"mhr"`
	Ratio  *float64 `json:"ratio"`
}

// CheckEstimate menghitung perbandingan biaya antar vendor untuk satu
// kontainer dengan grade dan ukuran yang dipilih manual.
func (c *EstimateController) CheckEstimate(ctx *fiber.Ctx) error {
	type damageItem struct {
		Material string  `json:"material" validate:"required"`
		Qty      float64 `json:"qty" validate:"required,gt=0"`
	}
	var input struct {
		Depot          string       `json:"depot" validate:"required"`
		ContainerSize  string       `json:"container_size" validate:"required,oneof=20 40"`
		ContainerGrade string       `json:"container_grade" validate:"required,oneof=A B C"`
		Items          []damageItem `json:"items" validate:"required,min=1,dive"`
	}

	// Parse Body
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Validasi input menggunakan validator
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if len(c.Config.Vendors(input.Depot)) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No vendors configured for depot " + input.Depot,
		})
	}

	catalog, err := repositories.NewMaterialRepository(c.DB).LoadCatalog()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	items := make([]pricing.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, pricing.LineItem{
			OrderID:        "MANUAL_CHECK",
			Depot:          input.Depot,
			ContainerType:  input.ContainerSize + input.ContainerGrade,
			ContainerGrade: input.ContainerGrade,
			Material:       item.Material,
			Qty:            item.Qty,
		})
	}

	engine := pricing.NewCostEngine(c.Config, catalog)
	records := engine.PriceOrders(items)
	if len(records) == 0 {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to calculate estimate",
		})
	}
	record := records[0]

	comparisons := make([]vendorComparison, 0, len(record.Vendors))
	for _, vendor := range c.Config.Vendors(input.Depot) {
		est := record.Vendors[vendor]
		if est.Cost == nil && est.Mhr == nil {
			// Vendor tidak valid untuk grade ini, tidak usah ditampilkan.
			continue
		}
		comparisons = append(comparisons, vendorComparison{
			Vendor: vendor,
			Cost:   est.Cost,
			Mhr:    est.Mhr,
			Ratio:  est.Ratio,
		})
	}
	slices.SortStableFunc(comparisons, func(a, b vendorComparison) int {
		if a.Cost == nil && b.Cost == nil {
			return 0
		}
		if a.Cost == nil {
			return 1
		}
		if b.Cost == nil {
			return -1
		}
		switch {
		case *a.Cost < *b.Cost:
			return -1
		case *a.Cost > *b.Cost:
			return 1
		default:
			return 0
		}
	})

	if len(comparisons) == 0 {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "No valid estimate for the selected grade and depot",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Estimate calculated",
		"data": fiber.Map{
			"depot":          input.Depot,
			"container_type": input.ContainerSize + input.ContainerGrade,
			"warning_count":  record.WarningCount,
			"vendors":        comparisons,
		},
	})
}
