package utils

import "testing"

func TestReadCSVDelimiterFallback(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantCol int
	}{
		{"comma", "NO_EOR,NOCONTAINER,MATERIAL,QTY\nE1,SPNU2839051,PANEL,1\n", 4},
		{"semicolon", "NO_EOR;NOCONTAINER;MATERIAL;QTY\nE1;SPNU2839051;PANEL;1\n", 4},
		{"tab", "NO_EOR\tNOCONTAINER\tMATERIAL\tQTY\nE1\tSPNU2839051\tPANEL\t1\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadSheet("upload.csv", []byte(tt.content))
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != 2 || len(rows[0]) != tt.wantCol {
				t.Errorf("got %d rows, header %d cols; want 2 rows, %d cols", len(rows), len(rows[0]), tt.wantCol)
			}
		})
	}
}

func TestReadSheetRejectsUnknownExtension(t *testing.T) {
	if _, err := ReadSheet("upload.ods", []byte("x")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestHeaderIndexNormalizesNames(t *testing.T) {
	index := HeaderIndex([]string{" NO_EOR ", "material", "Qty"})
	if index["NO_EOR"] != 0 || index["MATERIAL"] != 1 || index["QTY"] != 2 {
		t.Errorf("unexpected index: %v", index)
	}
}

func TestParseFloatCoercesInvalidToZero(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{" 1.5 ", 1.5},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := ParseFloat(tt.in); got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCellHandlesShortRows(t *testing.T) {
	row := []string{"a", " b "}
	if Cell(row, 1) != "b" {
		t.Errorf("Cell(row,1) = %q", Cell(row, 1))
	}
	if Cell(row, 5) != "" {
		t.Error("out-of-range cell should be empty")
	}
}
