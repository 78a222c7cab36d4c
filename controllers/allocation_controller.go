package controllers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"repair-app/allocation"
	"repair-app/controllers/idgen"
	"repair-app/models"
	"repair-app/pricing"
	"repair-app/repositories"
	"repair-app/types"
	"repair-app/utils"
)

type AllocationController struct {
	DB     *gorm.DB
	Config pricing.Config
}

func NewAllocationController(DB *gorm.DB) *AllocationController {
	return &AllocationController{DB: DB, Config: pricing.DefaultConfig()}
}

// allocationParams dikirim sebagai field form "params" (JSON) bersama file
// upload.
type allocationParams struct {
	Depot              string                       `json:"depot" validate:"required"`
	Method             string                       `json:"method" validate:"required,oneof=total per_mhr"`
	UseContainerFilter *bool                        `json:"use_container_filter"`
	UseMhrFilter       *bool                        `json:"use_mhr_filter"`
	TodayUnits         float64                      `json:"today_units" validate:"gte=0"`
	TodayMhr           float64                      `json:"today_mhr" validate:"gte=0"`
	UseWaitingList     bool                         `json:"use_waiting_list"`
	TomorrowUnits      float64                      `json:"tomorrow_units" validate:"gte=0"`
	TomorrowMhr        float64                      `json:"tomorrow_mhr" validate:"gte=0"`
	UseOtherVendors    bool                         `json:"use_other_vendors"`
	OtherVendors       map[string]allocation.Budget `json:"other_vendors"`
}

type allocationDetail struct {
	EorNo          string   `json:"eor_no"`
	ContainerType  string   `json:"container_type"`
	ContainerGrade string   `json:"container_grade"`
	Allocation     string   `json:"allocation"`
	FinalPrice     *float64 `json:"final_price"`
	FinalMhr       *float64 `json:"final_mhr"`
	Savings        *float64 `json:"savings"`
	WarningCount   int      `json:"warning_count"`
}

var requiredUploadColumns = []string{"NO_EOR", "NOCONTAINER", "MATERIAL", "QTY"}

// RunAllocation membaca file upload (CSV/Excel), menghitung estimasi semua
// vendor, menjalankan alokasi tiga tahap, menyimpan hasilnya, dan
// mengembalikan ringkasan plus detail per EOR.
func (c *AllocationController) RunAllocation(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	var params allocationParams
	if err := json.Unmarshal([]byte(ctx.FormValue("params")), &params); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid params payload: " + err.Error(),
		})
	}
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(c.Config.Vendors(params.Depot)) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No vendors configured for depot " + params.Depot,
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

	items, err := c.parseLineItems(fileHeader.Filename, content, params.Depot)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	catalog, err := repositories.NewMaterialRepository(c.DB).LoadCatalog()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	records := pricing.NewCostEngine(c.Config, catalog).PriceOrders(items)
	decisions, err := allocation.NewEngine(c.Config).Allocate(records, buildOptions(params))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	details := buildDetails(records, decisions)
	totalWarnings := 0
	for _, rec := range records {
		totalWarnings += rec.WarningCount
	}

	userID := 0
	if v, ok := ctx.Locals("userID").(float64); ok {
		userID = int(v)
	}

	run := models.AllocationRun{
		ID:            types.SnowflakeID(idgen.GenerateID()),
		Depot:         params.Depot,
		Method:        params.Method,
		Filename:      fileHeader.Filename,
		TotalOrders:   len(records),
		TotalWarnings: totalWarnings,
		CreatedBy:     userID,
	}
	if err := c.DB.Create(&run).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	results := make([]models.AllocationResult, 0, len(details))
	for _, d := range details {
		results = append(results, models.AllocationResult{
			RunID:          run.ID,
			EorNo:          d.EorNo,
			ContainerType:  d.ContainerType,
			ContainerGrade: d.ContainerGrade,
			Allocation:     d.Allocation,
			FinalPrice:     d.FinalPrice,
			FinalMhr:       d.FinalMhr,
			Savings:        d.Savings,
			WarningCount:   d.WarningCount,
		})
	}
	if len(results) > 0 {
		if err := c.DB.Create(&results).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Allocation completed",
		"data": fiber.Map{
			"run_id":         run.ID,
			"depot":          params.Depot,
			"method":         params.Method,
			"total_orders":   len(records),
			"total_warnings": totalWarnings,
			"summary":        allocation.Summarize(records, decisions),
			"details":        details,
		},
	})
}

// parseLineItems memvalidasi kolom wajib dan mengubah baris upload menjadi
// line item dengan grade hasil klasifikasi nomor kontainer.
func (c *AllocationController) parseLineItems(filename string, content []byte, depot string) ([]pricing.LineItem, error) {
	rows, err := utils.ReadSheet(filename, content)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("file must contain a header and at least one data row")
	}

	index := utils.HeaderIndex(rows[0])
	missing := make([]string, 0)
	for _, col := range requiredUploadColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New("missing required columns: " + strings.Join(missing, ", "))
	}

	items := make([]pricing.LineItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		eor := utils.Cell(row, index["NO_EOR"])
		containerNo := utils.Cell(row, index["NOCONTAINER"])
		material := utils.Cell(row, index["MATERIAL"])
		if eor == "" && containerNo == "" && material == "" {
			continue
		}
		size, grade := pricing.ClassifyContainer(containerNo)
		items = append(items, pricing.LineItem{
			OrderID:        eor,
			Depot:          depot,
			ContainerType:  size + grade,
			ContainerGrade: grade,
			Material:       material,
			Qty:            utils.ParseFloat(utils.Cell(row, index["QTY"])),
		})
	}
	if len(items) == 0 {
		return nil, errors.New("no data rows found in file")
	}
	return items, nil
}

func buildOptions(params allocationParams) allocation.Options {
	useUnits := true
	if params.UseContainerFilter != nil {
		useUnits = *params.UseContainerFilter
	}
	useMhr := true
	if params.UseMhrFilter != nil {
		useMhr = *params.UseMhrFilter
	}
	return allocation.Options{
		Method:          allocation.Method(params.Method),
		UseUnitFilter:   useUnits,
		UseMhrFilter:    useMhr,
		Today:           allocation.Budget{Units: params.TodayUnits, Mhr: params.TodayMhr},
		UseWaitingList:  params.UseWaitingList,
		Tomorrow:        allocation.Budget{Units: params.TomorrowUnits, Mhr: params.TomorrowMhr},
		UseOtherVendors: params.UseOtherVendors,
		OtherVendors:    params.OtherVendors,
	}
}

// buildDetails menggabungkan record harga dan keputusan alokasi, diurutkan
// dari potensi penghematan terbesar seperti tampilan dashboard.
func buildDetails(records []pricing.CostRecord, decisions []allocation.Decision) []allocationDetail {
	details := make([]allocationDetail, 0, len(records))
	for i, rec := range records {
		d := decisions[i]
		details = append(details, allocationDetail{
			EorNo:          rec.OrderID,
			ContainerType:  rec.ContainerType,
			ContainerGrade: rec.ContainerGrade,
			Allocation:     d.Allocation,
			FinalPrice:     d.FinalPrice,
			FinalMhr:       d.FinalMhr,
			Savings:        d.Savings,
			WarningCount:   rec.WarningCount,
		})
	}
	slices.SortStableFunc(details, func(a, b allocationDetail) int {
		if a.Savings == nil && b.Savings == nil {
			return 0
		}
		if a.Savings == nil {
			return 1
		}
		if b.Savings == nil {
			return -1
		}
		switch {
		case *a.Savings > *b.Savings:
			return -1
		case *a.Savings < *b.Savings:
			return 1
		default:
			return 0
		}
	})
	return details
}

func (c *AllocationController) GetAllAllocations(ctx *fiber.Ctx) error {
	var runs []models.AllocationRun
	if err := c.DB.Order("created_at desc").Find(&runs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": runs})
}

func (c *AllocationController) GetAllocationByID(ctx *fiber.Ctx) error {
	run, results, err := c.findRun(ctx)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"run":     run,
			"results": results,
		},
	})
}

// ExportAllocation mengunduh hasil satu run sebagai CSV.
func (c *AllocationController) ExportAllocation(ctx *fiber.Ctx) error {
	run, results, err := c.findRun(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write([]string{"NO_EOR", "CONTAINER_TYPE", "GRADE", "ALLOCATION", "FINAL_PRICE", "FINAL_MHR", "SAVINGS", "WARNINGS"})
	for _, r := range results {
		writer.Write([]string{
			r.EorNo,
			r.ContainerType,
			r.ContainerGrade,
			r.Allocation,
			formatFloat(r.FinalPrice),
			formatFloat(r.FinalMhr),
			formatFloat(r.Savings),
			strconv.Itoa(r.WarningCount),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="allocation_`+run.Depot+`_`+strconv.FormatInt(int64(run.ID), 10)+`.csv"`)
	return ctx.Send(buf.Bytes())
}

// DownloadTemplate membuat template Excel untuk upload alokasi.
func (c *AllocationController) DownloadTemplate(ctx *fiber.Ctx) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"NO_EOR", "NOCONTAINER", "MATERIAL", "QTY"},
		{"EOR/00000004/01/2023", "SPNU2839051", "MISCELENEOUS - SECURING DEVICE / OTHER MATERIAL REMOVE", 1},
		{"EOR/00000004/01/2023", "SPNU2839051", "CROSS MEMBER - INSERT 30 CM", 1},
		{"EOR/00000004/01/2023", "SPNU2839051", "FORKLIFT POCKET - WEB STRAIGHTEN", 2},
		{"EOR/00000005/01/2023", "SPNU2759465", "SIDE PANEL - STRAIGHTEN AND WELD 30 CM", 1},
		{"EOR/00000005/01/2023", "SPNU2759465", "ROOF PANEL STRAIGHTEN AND WELD 30 CM", 1},
		{"EOR/00000005/01/2023", "SPNU2759465", "SIDE PANEL - STRAIGHTEN 30 X 90 CM", 1},
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
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="template_alokasi_perbaikan.xlsx"`)
	return ctx.Send(buf.Bytes())
}

func (c *AllocationController) findRun(ctx *fiber.Ctx) (*models.AllocationRun, []models.AllocationResult, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return nil, nil, ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var run models.AllocationRun
	if err := c.DB.First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Allocation run not found"})
		}
		return nil, nil, ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var results []models.AllocationResult
	if err := c.DB.Where("run_id = ?", run.ID).Order("id asc").Find(&results).Error; err != nil {
		return nil, nil, ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return &run, results, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
