package service

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		personCount int
		wantLevel   string
		wantColor   string
	}{
		{0, "Not Busy", "green"},
		{1, "Not Busy", "green"},
		{20, "Not Busy", "green"},
		{25, "Not Busy", "green"}, // boundary belongs to calmer tier
		{26, "Busy", "yellow"},
		{30, "Busy", "yellow"},
		{50, "Busy", "yellow"}, // boundary belongs to calmer tier
		{51, "Crowded", "red"},
		{60, "Crowded", "red"},
		{1000, "Crowded", "red"},
	}
	for _, tt := range tests {
		got := Classify(tt.personCount)
		if got.Level != tt.wantLevel || got.Color != tt.wantColor {
			t.Errorf("Classify(%d) = {%s, %s}, want {%s, %s}",
				tt.personCount, got.Level, got.Color, tt.wantLevel, tt.wantColor)
		}
	}
}
