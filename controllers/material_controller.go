package controllers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"repair-app/models"
	"repair-app/repositories"
	"repair-app/utils"
)

type MaterialController struct {
	Repo *repositories.MaterialRepository
}

func NewMaterialController(DB *gorm.DB) *MaterialController {
	return &MaterialController{Repo: repositories.NewMaterialRepository(DB)}
}

type materialInput struct {
	Material     string  `json:"material" validate:"required"`
	MhrSpil      float64 `json:"mhr_spil" validate:"gte=0"`
	MhrVendor    float64 `json:"mhr_vendor" validate:"gte=0"`
	CostMaterial float64 `json:"cost_material" validate:"gte=0"`
	Surcharge    float64 `json:"surcharge" validate:"gte=0"`
}

var materialUploadColumns = []string{"MATERIAL", "MHR_SPIL", "MHR_VENDOR", "COSTMATERIAL", "SURCHARGE"}

func (c *MaterialController) GetAllMaterials(ctx *fiber.Ctx) error {
	materials, err := c.Repo.GetAll()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": materials})
}

func (c *MaterialController) GetMaterialByID(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}
	material, err := c.Repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": material})
}

func (c *MaterialController) CreateMaterial(ctx *fiber.Ctx) error {
	var input materialInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := 0
	if v, ok := ctx.Locals("userID").(float64); ok {
		userID = int(v)
	}

	material := models.MasterMaterial{
		Material:     input.Material,
		MhrSpil:      input.MhrSpil,
		MhrVendor:    input.MhrVendor,
		CostMaterial: input.CostMaterial,
		Surcharge:    input.Surcharge,
		CreatedBy:    userID,
	}
	if err := c.Repo.Create(&material); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Material created",
		"data":    material,
	})
}

func (c *MaterialController) UpdateMaterial(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input materialInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	material, err := c.Repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	material.Material = input.Material
	material.MhrSpil = input.MhrSpil
	material.MhrVendor = input.MhrVendor
	material.CostMaterial = input.CostMaterial
	material.Surcharge = input.Surcharge
	if v, ok := ctx.Locals("userID").(float64); ok {
		material.UpdatedBy = int(v)
	}

	if err := c.Repo.Update(material); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Material updated",
		"data":    material,
	})
}

func (c *MaterialController) DeleteMaterial(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}
	if err := c.Repo.Delete(uint(id)); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Material deleted",
	})
}

// UploadMaterials menerima file Excel/CSV master material dan melakukan
// upsert per baris berdasarkan kode material.
func (c *MaterialController) UploadMaterials(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}

	rows, err := utils.ReadSheet(fileHeader.Filename, content)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File must contain a header and at least one data row",
		})
	}

	index := utils.HeaderIndex(rows[0])
	missing := make([]string, 0)
	for _, col := range materialUploadColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing required columns: " + strings.Join(missing, ", "),
		})
	}

	userID := 0
	if v, ok := ctx.Locals("userID").(float64); ok {
		userID = int(v)
	}

	created, updated, skipped := 0, 0, 0
	for _, row := range rows[1:] {
		name := utils.Cell(row, index["MATERIAL"])
		if name == "" {
			skipped++
			continue
		}
		material := models.MasterMaterial{
			Material:     name,
			MhrSpil:      utils.ParseFloat(utils.Cell(row, index["MHR_SPIL"])),
			MhrVendor:    utils.ParseFloat(utils.Cell(row, index["MHR_VENDOR"])),
			CostMaterial: utils.ParseFloat(utils.Cell(row, index["COSTMATERIAL"])),
			Surcharge:    utils.ParseFloat(utils.Cell(row, index["SURCHARGE"])),
			CreatedBy:    userID,
			UpdatedBy:    userID,
		}
		isNew, err := c.Repo.Upsert(&material)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Materials uploaded",
		"data": fiber.Map{
			"created": created,
			"updated": updated,
			"skipped": skipped,
		},
	})
}

// DownloadTemplate membuat template Excel master material.
func (c *MaterialController) DownloadTemplate(ctx *fiber.Ctx) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"MATERIAL", "MHR_SPIL", "MHR_VENDOR", "COSTMATERIAL", "SURCHARGE"},
		{"SIDE PANEL - STRAIGHTEN AND WELD 30 CM", 1.5, 1.5, 25000, 0},
		{"CROSS MEMBER - INSERT 30 CM", 2.0, 2.0, 45000, 5000},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		f.SetSheetRow(sheet, cell, &row)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build template"})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="template_master_material.xlsx"`)
	return ctx.Send(buf.Bytes())
}
