package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadSheet membaca isi file upload (CSV atau Excel) menjadi baris-baris
// string. Baris pertama diasumsikan header.
func ReadSheet(filename string, content []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(content)
	case ".xlsx", ".xls":
		return readExcel(content)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(filename))
	}
}

// readCSV mencoba beberapa delimiter umum (koma, titik koma, tab) dan
// memakai hasil pertama yang headernya punya lebih dari satu kolom.
func readCSV(content []byte) ([][]string, error) {
	var fallback [][]string
	for _, delimiter := range []rune{',', ';', '\t'} {
		reader := csv.NewReader(bytes.NewReader(content))
		reader.Comma = delimiter
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		rows, err := reader.ReadAll()
		if err != nil || len(rows) == 0 {
			continue
		}
		if len(rows[0]) > 1 {
			return rows, nil
		}
		if fallback == nil {
			fallback = rows
		}
	}
	if fallback == nil {
		return nil, fmt.Errorf("unable to parse CSV content")
	}
	return fallback, nil
}

func readExcel(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	return f.GetRows(sheets[0])
}

// HeaderIndex memetakan nama kolom (di-trim dan di-uppercase) ke posisinya.
func HeaderIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return index
}

// Cell mengambil satu sel dengan aman; baris pendek menghasilkan string
// kosong.
func Cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// ParseFloat mengubah string jadi angka; nilai kosong atau tidak valid
// dianggap nol, tidak pernah error.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
