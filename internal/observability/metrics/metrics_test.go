package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusClass(t *testing.T) {
	cases := map[int]string{
		101: "1xx",
		200: "2xx",
		303: "3xx",
		404: "4xx",
		500: "5xx",
		503: "5xx",
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusClass(code), "status %d", code)
	}
}

func TestRecordFolderStrategy(t *testing.T) {
	before := testutil.ToFloat64(FolderStrategy.WithLabelValues("domain", ResultMatched))
	RecordFolderStrategy("domain", ResultMatched)
	after := testutil.ToFloat64(FolderStrategy.WithLabelValues("domain", ResultMatched))
	assert.InDelta(t, before+1, after, 0.0001)
}

type sampleErr struct{}

func (sampleErr) Error() string { return "sample" }

func TestRecordStorageCall_ErrorClass(t *testing.T) {
	err := fmt.Errorf("list children: %w", sampleErr{})
	RecordStorageCall("list", 10*time.Millisecond, err)

	got := testutil.ToFloat64(StorageCalls.WithLabelValues("list", ResultError, "metrics_sampleerr"))
	assert.GreaterOrEqual(t, got, 1.0)
}

func TestRecordAuth(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", ResultError))
	RecordAuth("login", errors.New("nope"))
	assert.InDelta(t, before+1, testutil.ToFloat64(AuthAttempts.WithLabelValues("login", ResultError)), 0.0001)
}
