package util //nolint:revive // package name util hosts shared display formatting helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes *int64
		want  string
	}{
		{name: "nil", bytes: nil, want: "Unknown size"},
		{name: "zero", bytes: int64Ptr(0), want: "0.00 B"},
		{name: "bytes", bytes: int64Ptr(512), want: "512.00 B"},
		{name: "boundary", bytes: int64Ptr(1024), want: "1.00 KB"},
		{name: "fractional kb", bytes: int64Ptr(1536), want: "1.50 KB"},
		{name: "megabytes", bytes: int64Ptr(5 * 1024 * 1024), want: "5.00 MB"},
		{name: "gigabytes", bytes: int64Ptr(3 << 30), want: "3.00 GB"},
		{name: "caps at terabytes", bytes: int64Ptr(2048 << 40), want: "2048.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.bytes))
		})
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2024", FormatDate(&ts))

	offset := time.Date(2024, time.March, 6, 1, 0, 0, 0, time.FixedZone("CET", 2*3600))
	assert.Equal(t, "Mar 5, 2024", FormatDate(&offset))

	assert.Equal(t, "Unknown date", FormatDate(nil))
	assert.Equal(t, "Unknown date", FormatDate(&time.Time{}))
}
