package pricing

import "testing"

func TestClassifyContainer(t *testing.T) {
	tests := []struct {
		name        string
		containerNo string
		wantSize    string
		wantGrade   string
	}{
		{"20ft grade C lower bound", "SPNU2500000", "20", "C"},
		{"20ft grade C", "SPNU2600000", "20", "C"},
		{"20ft grade C upper bound", "SPNU2759999", "20", "C"},
		{"20ft grade B lower bound", "SPNU2760000", "20", "B"},
		{"20ft grade B upper bound", "SPNU2899999", "20", "B"},
		{"20ft grade A lower bound", "SPNU2900000", "20", "A"},
		{"20ft grade A upper bound", "SPNU3499999", "20", "A"},
		{"between 20ft and 40ft ranges", "SPNU3500000", "Others", "Others"},
		{"40ft grade C lower bound", "SPNU4600000", "40", "C"},
		{"40ft grade C upper bound", "SPNU4619999", "40", "C"},
		{"40ft grade B lower bound", "SPNU4620000", "40", "B"},
		{"40ft grade B upper bound", "SPNU4629998", "40", "B"},
		{"gap between 40ft B and A buckets", "SPNU4629999", "Others", "Others"},
		{"40ft grade A lower bound", "SPNU4630000", "40", "A"},
		{"40ft grade A large serial", "SPNU9999999", "40", "A"},
		{"below all ranges", "SPNU2499999", "Others", "Others"},
		{"digits scattered between letters", "SP2NU839051", "20", "B"},
		{"no digits at all", "SPNU", "Others", "Others"},
		{"empty string", "", "Others", "Others"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, grade := ClassifyContainer(tt.containerNo)
			if size != tt.wantSize || grade != tt.wantGrade {
				t.Errorf("ClassifyContainer(%q) = (%q, %q), want (%q, %q)",
					tt.containerNo, size, grade, tt.wantSize, tt.wantGrade)
			}
		})
	}
}

func TestClassifyContainerIsIdempotent(t *testing.T) {
	inputs := []string{"SPNU2839051", "SPNU4629999", "no-digits", ""}
	for _, in := range inputs {
		s1, g1 := ClassifyContainer(in)
		s2, g2 := ClassifyContainer(in)
		if s1 != s2 || g1 != g2 {
			t.Errorf("ClassifyContainer(%q) not stable: (%q,%q) then (%q,%q)", in, s1, g1, s2, g2)
		}
	}
}

func TestExtractSerial(t *testing.T) {
	if _, ok := ExtractSerial("ABCD"); ok {
		t.Error("ExtractSerial should fail when there are no digits")
	}
	serial, ok := ExtractSerial("SPNU2839051")
	if !ok || serial != 2839051 {
		t.Errorf("ExtractSerial(SPNU2839051) = %d, %v; want 2839051, true", serial, ok)
	}
}
