package journal

import (
	"reflect"
	"testing"
	"time"
)

func TestEntryRecord(t *testing.T) {
	expected := []interface{}{"2024-03-07", "3.5", "10", "80.25", "7", "new mask"}

	entry := Entry{
		Date:      time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local),
		AHI:       3.5,
		Leak:      10,
		Coherence: 80.25,
		Energy:    7,
		Notes:     "new mask",
	}

	record := entry.Record()

	if !reflect.DeepEqual(record, expected) {
		t.Errorf("Incorrect record\n   expected: %v\n   got:      %v\n", expected, record)
	}
}

func TestEntryValidate(t *testing.T) {
	entry := Entry{
		Date:      time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local),
		AHI:       3.5,
		Leak:      10,
		Coherence: 80,
		Energy:    7,
	}

	if err := entry.Validate(); err != nil {
		t.Errorf("Unexpected error returned from Validate (%v)", err)
	}
}

func TestEntryValidateWithInvalidFields(t *testing.T) {
	base := Entry{
		Date:      time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local),
		AHI:       3.5,
		Leak:      10,
		Coherence: 80,
		Energy:    7,
	}

	tests := []struct {
		name  string
		entry func(Entry) Entry
	}{
		{"missing date", func(e Entry) Entry { e.Date = time.Time{}; return e }},
		{"negative AHI", func(e Entry) Entry { e.AHI = -0.1; return e }},
		{"negative leak", func(e Entry) Entry { e.Leak = -1; return e }},
		{"energy too low", func(e Entry) Entry { e.Energy = 0; return e }},
		{"energy too high", func(e Entry) Entry { e.Energy = 11; return e }},
	}

	for _, test := range tests {
		if err := test.entry(base).Validate(); err == nil {
			t.Errorf("Expected error return for %s, got %v", test.name, err)
		}
	}
}
