package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateFormats(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-05":           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"2024/03/05":           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"03/05/2024":           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"05-03-2024":           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"2024-03-05T10:20:30":  time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		"2024-03-05T10:20:30Z": time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
	}
	for input, want := range cases {
		got, err := ParseDate(input)
		assert.NoError(t, err, input)
		assert.True(t, got.Equal(want), "parsing %s: got %v", input, got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("yesterday")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestDayTruncates(t *testing.T) {
	in := time.Date(2024, 3, 5, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Day(in))
}
