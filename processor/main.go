package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"repair-app/allocation"
	"repair-app/config"
	"repair-app/controllers/idgen"
	"repair-app/models"
	"repair-app/pricing"
	"repair-app/repositories"
	"repair-app/types"
	"repair-app/utils"
)

// Proses semua file CSV alokasi di folder `unprocessed`
func checkUnprocessedFiles(db *gorm.DB) {
	unprocessedFolder := filepath.Join(config.DataFolder, "unprocessed")

	files, err := filepath.Glob(filepath.Join(unprocessedFolder, "*.csv"))
	if err != nil {
		log.Fatal("❌ Gagal membaca folder:", err)
	}

	for _, file := range files {
		fmt.Println("📂 Memproses file:", file)
		processFile(db, file)
	}
}

func processFile(db *gorm.DB, filename string) {
	fileNameOnly := filepath.Base(filename)

	// Cek apakah file sudah pernah diproses
	var existingFile models.FileLog
	if err := db.Where("filename = ?", fileNameOnly).First(&existingFile).Error; err == nil {
		log.Println("⚠️ File sudah pernah diproses, skip:", filename)
		return
	}

	info, err := os.Stat(filename)
	if err != nil {
		fmt.Println("❌ Gagal membaca file:", err)
		return
	}

	// File selain alokasi dibiarkan di folder unprocessed
	if !strings.HasPrefix(fileNameOnly, "ALLOC_") {
		fmt.Println("⚠️ Unrecognized File:", fileNameOnly)
		return
	}

	if err := processAllocationCSV(db, filename); err != nil {
		fmt.Println("❌ Gagal memproses file:", err)
		return
	}

	db.Create(&models.FileLog{Filename: fileNameOnly, DateModified: info.ModTime()})
	fmt.Println("✅ File berhasil diproses & disimpan:", filename)

	moveToProcessed(filename)
}

func processAllocationCSV(db *gorm.DB, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	rows, err := utils.ReadSheet(filepath.Base(filename), content)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("file kosong: %s", filename)
	}

	index := utils.HeaderIndex(rows[0])
	for _, col := range []string{"NO_EOR", "NOCONTAINER", "MATERIAL", "QTY"} {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("kolom %s tidak ditemukan di %s", col, filename)
		}
	}

	cfg := pricing.DefaultConfig()
	depot := config.DefaultDepot

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
		return fmt.Errorf("tidak ada baris data di %s", filename)
	}

	catalog, err := repositories.NewMaterialRepository(db).LoadCatalog()
	if err != nil {
		return err
	}

	records := pricing.NewCostEngine(cfg, catalog).PriceOrders(items)
	decisions, err := allocation.NewEngine(cfg).Allocate(records, allocation.Options{
		Method:        allocation.MethodTotalCost,
		UseUnitFilter: true,
		UseMhrFilter:  true,
		Today: allocation.Budget{
			Units: config.DefaultTodayUnits,
			Mhr:   config.DefaultTodayMhr,
		},
	})
	if err != nil {
		return err
	}

	totalWarnings := 0
	for _, rec := range records {
		totalWarnings += rec.WarningCount
	}

	run := models.AllocationRun{
		ID:            types.SnowflakeID(idgen.GenerateID()),
		Depot:         depot,
		Method:        string(allocation.MethodTotalCost),
		Filename:      filepath.Base(filename),
		TotalOrders:   len(records),
		TotalWarnings: totalWarnings,
	}
	if err := db.Create(&run).Error; err != nil {
		return err
	}

	results := make([]models.AllocationResult, 0, len(records))
	for i, rec := range records {
		d := decisions[i]
		results = append(results, models.AllocationResult{
			RunID:          run.ID,
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
	if err := db.Create(&results).Error; err != nil {
		return err
	}

	summary := allocation.Summarize(records, decisions)
	sendEmailNotification(config.AlertRecipients, run, summary)

	fmt.Println("✅ Allocation Run Created:", run.ID)
	return nil
}

func moveToProcessed(filename string) {
	// Tunggu sebentar untuk memastikan file tidak terkunci
	time.Sleep(1 * time.Second)

	processedFolder := filepath.Join(config.DataFolder, "processed")
	if _, err := os.Stat(processedFolder); os.IsNotExist(err) {
		if err := os.MkdirAll(processedFolder, os.ModePerm); err != nil {
			log.Fatalf("❌ Gagal membuat folder processed: %v", err)
		}
	}

	processedFilePath := filepath.Join(processedFolder, filepath.Base(filename))
	if err := os.Rename(filename, processedFilePath); err != nil {
		fmt.Println("⚠️  Rename gagal, coba metode copy & delete...")
		if err := copyAndDeleteFile(filename, processedFilePath); err != nil {
			log.Fatalf("❌ Gagal memindahkan file ke folder processed: %v", err)
		}
	}
}

func copyAndDeleteFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destinationFile.Close()

	_, err = io.Copy(destinationFile, sourceFile)
	if err != nil {
		return err
	}

	return os.Remove(src)
}

func sendEmailNotification(toEmails []string, run models.AllocationRun, summary []allocation.GroupSummary) error {
	if config.SMTPHost == "" || len(toEmails) == 0 {
		return nil
	}

	subject := "📦 New Allocation Run " + run.Filename

	var sb strings.Builder
	sb.WriteString("<html><body>")
	sb.WriteString("<h3>Allocation run completed</h3>")
	sb.WriteString(fmt.Sprintf("<p>File: <strong>%s</strong></p>", run.Filename))
	sb.WriteString(fmt.Sprintf("<p>Depot: %s, Orders: %d, Warnings: %d</p>", run.Depot, run.TotalOrders, run.TotalWarnings))
	sb.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Allocation</th><th>Orders</th><th>Total Cost</th><th>Total MHR</th></tr>")
	for _, g := range summary {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%.2f</td><td>%.2f</td></tr>", g.Allocation, g.Orders, g.TotalCost, g.TotalMhr))
	}
	sb.WriteString("</table>")
	sb.WriteString("<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>")
	sb.WriteString("</body></html>")

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", toEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", sb.String())

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		fmt.Println("❌ Gagal mengirim email:", err)
		return err
	}

	fmt.Println("✅ Email notifikasi terkirim ke:", toEmails)
	return nil
}

func main() {
	config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("❌ Gagal konek ke database: %v", err)
	}

	idgen.Init()

	fmt.Println("🚀 Processor CSV berjalan...")

	checkUnprocessedFiles(db)

	fmt.Println("✅ Semua file CSV diproses!")
}
