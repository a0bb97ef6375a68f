package log

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DBG", LevelDebug, false},
		{"information", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for _, level := range AllLevels() {
		got, err := ParseLevel(level.String())
		if err != nil || got != level {
			t.Errorf("ParseLevel(%q) = %v, %v", level.String(), got, err)
		}
		if got, _ := ParseLevel(level.ShortString()); got != level {
			t.Errorf("ParseLevel(%q) = %v, want %v", level.ShortString(), got, level)
		}
	}
}

func TestShouldLog(t *testing.T) {
	if LevelDebug.ShouldLog(LevelInfo) {
		t.Error("debug should not log at info")
	}
	if !LevelError.ShouldLog(LevelInfo) {
		t.Error("error should log at info")
	}
}
