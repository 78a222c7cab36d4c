package pricing

import "strconv"

// Ukuran dan grade untuk nomor seri di luar range yang dikenal.
const Unclassified = "Others"

// ExtractSerial mengambil semua digit dari nomor kontainer dan
// menggabungkannya menjadi satu angka. Contoh: "SPNU2839051" -> 2839051.
func ExtractSerial(containerNo string) (int64, bool) {
	digits := make([]byte, 0, len(containerNo))
	for i := 0; i < len(containerNo); i++ {
		if containerNo[i] >= '0' && containerNo[i] <= '9' {
			digits = append(digits, containerNo[i])
		}
	}
	if len(digits) == 0 {
		return 0, false
	}
	serial, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, false
	}
	return serial, true
}

// ClassifyContainer menentukan ukuran dan grade kontainer dari nomor serinya.
// Nomor yang tidak bisa diparse atau di luar range selalu menghasilkan
// ("Others", "Others"), tidak pernah error.
//
// Catatan: seri 4629999 memang jatuh di antara bucket 40/B dan 40/A dan
// diklasifikasikan Others. Batas ini mengikuti aturan bisnis yang berlaku,
// jangan diubah tanpa konfirmasi.
func ClassifyContainer(containerNo string) (size string, grade string) {
	serial, ok := ExtractSerial(containerNo)
	if !ok {
		return Unclassified, Unclassified
	}
	switch {
	case serial >= 2500000 && serial <= 2759999:
		return "20", "C"
	case serial >= 2760000 && serial <= 2899999:
		return "20", "B"
	case serial >= 2900000 && serial <= 3499999:
		return "20", "A"
	case serial >= 4600000 && serial <= 4619999:
		return "40", "C"
	case serial >= 4620000 && serial <= 4629998:
		return "40", "B"
	case serial >= 4630000:
		return "40", "A"
	default:
		return Unclassified, Unclassified
	}
}
