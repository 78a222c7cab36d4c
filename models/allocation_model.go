package models

import (
	"time"

	"repair-app/types"
)

// AllocationRun adalah satu eksekusi alokasi (upload file atau processor).
type AllocationRun struct {
	ID            types.SnowflakeID `json:"id" gorm:"primaryKey"`
	Depot         string            `json:"depot"`
	Method        string            `json:"method"`
	Filename      string            `json:"filename"`
	TotalOrders   int               `json:"total_orders"`
	TotalWarnings int               `json:"total_warnings"`
	CreatedBy     int               `json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
}

// AllocationResult adalah keputusan final satu EOR dalam sebuah run.
type AllocationResult struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	RunID          types.SnowflakeID `json:"run_id" gorm:"index"`
	EorNo          string            `json:"eor_no"`
	ContainerType  string            `json:"container_type"`
	ContainerGrade string            `json:"container_grade"`
	Allocation     string            `json:"allocation"`
	FinalPrice     *float64          `json:"final_price"`
	FinalMhr       *float64          `json:"final_mhr"`
	Savings        *float64          `json:"savings"`
	WarningCount   int               `json:"warning_count"`
}

// FileLog mencatat file yang sudah diproses oleh processor supaya tidak
// diproses dua kali.
type FileLog struct {
	ID           uint   `gorm:"primaryKey"`
	Filename     string `gorm:"unique;not null"`
	DateModified time.Time
}
