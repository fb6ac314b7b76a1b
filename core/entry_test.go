package core

import (
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{PanicLevel, "PANIC"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntryPool(t *testing.T) {
	e1 := GetEntry()
	if e1 == nil {
		t.Fatal("GetEntry() returned nil")
	}
	if e1.Time.IsZero() {
		t.Error("GetEntry() returned zero Time")
	}
	if len(e1.Fields) != 0 {
		t.Errorf("Expected empty fields, got %d", len(e1.Fields))
	}

	e1.Message = "test"
	e1.Fields = append(e1.Fields, Field{Key: "test", Str: "value"})

	PutEntry(e1)

	e2 := GetEntry()
	if e2 == nil {
		t.Fatal("GetEntry() returned nil after PutEntry()")
	}

	// Pooled entries must come back clean
	if e2.Message != "" {
		t.Errorf("Expected empty message after pool reset, got %q", e2.Message)
	}
	if len(e2.Fields) != 0 {
		t.Errorf("Expected empty fields after pool reset, got %d", len(e2.Fields))
	}
}

func TestPutEntryNil(t *testing.T) {
	// Must not panic
	PutEntry(nil)
}

func BenchmarkGetEntry(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEntry()
		PutEntry(e)
	}
}

func BenchmarkGetEntryWithFields(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEntry()
		e.Message = "test message"
		e.Level = InfoLevel
		e.Fields = append(e.Fields, Field{Key: "key1", Str: "value1"})
		e.Fields = append(e.Fields, Field{Key: "key2", Int64: 42})
		PutEntry(e)
	}
}
