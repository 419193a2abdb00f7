package pricing

import "testing"

func TestSanitize(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"пустая строка", "", ""},
		{"без изменений", "Apple iPhone 15 128GB", "Apple iPhone 15 128GB"},
		{"Dual Sim сокращается", "Samsung Galaxy A55 Dual Sim", "Samsung Galaxy A55 DS"},
		{"RAM схлопывается в дробь", "Samsung 8GB RAM 256GB Dual Sim", "Samsung 8/256GB DS"},
		{"региональная метка east", "Apple iPhone 15 Region East 128GB", "Apple iPhone 15 128GB"},
		{"региональная метка west в другом регистре", "Xiaomi 14 REGION WEST 256GB", "Xiaomi 14 256GB"},
		{"дефис с пробелами", "Honor 90 - 512GB", "Honor 90 512GB"},
		{"префикс планшета", "Tablet Apple iPad Air 11 128GB", "Apple iPad Air 11 128GB"},
		{"префикс часов", "Watch Samsung Galaxy Watch6", "Samsung Galaxy Watch6"},
		{"лишние пробелы", "  Google   Pixel 8   ", "Google Pixel 8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, ожидалось %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	once := cfg.Sanitize("Tablet Samsung Galaxy Tab S9 Region West 8GB RAM 256GB Dual Sim")
	twice := cfg.Sanitize(once)
	if once != twice {
		t.Errorf("повторная санитизация изменила результат: %q -> %q", once, twice)
	}
}

func TestIsExcluded(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		in   string
		want bool
	}{
		{"MacBook Pro 14 M3", true},
		{"Apple iMac 24", true},
		{"Backbone One Controller", true},
		{"Samsung bulk lot 50pcs", true},
		{"OH25B Spare Part", true},
		{"LG Soundbar S60Q", true},
		{"Samsung Galaxy S24 256GB", false},
		{"Apple iPhone 15", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := cfg.IsExcluded(tt.in); got != tt.want {
			t.Errorf("IsExcluded(%q) = %v, ожидалось %v", tt.in, got, tt.want)
		}
	}
}
