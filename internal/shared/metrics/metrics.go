package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumeUpdateTotal       atomic.Uint64
	resumeUpdateFailedTotal atomic.Uint64
	imageProcessedTotal     atomic.Uint64
	imageFailedTotal        atomic.Uint64
	aiRequestTotal          atomic.Uint64
	aiRequestFailedTotal    atomic.Uint64

	imageDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000})
)

// IncResumeUpdate counts a committed resume update.
func IncResumeUpdate() {
	resumeUpdateTotal.Add(1)
}

// IncResumeUpdateFailed counts a rejected or failed resume update.
func IncResumeUpdateFailed() {
	resumeUpdateFailedTotal.Add(1)
}

// IncImageProcessed counts a successful image processing call.
func IncImageProcessed() {
	imageProcessedTotal.Add(1)
}

// IncImageFailed counts a failed image processing call.
func IncImageFailed() {
	imageFailedTotal.Add(1)
}

// IncAIRequest counts a language-model call.
func IncAIRequest() {
	aiRequestTotal.Add(1)
}

// IncAIRequestFailed counts a failed language-model call.
func IncAIRequestFailed() {
	aiRequestFailedTotal.Add(1)
}

// ObserveImageDurationMs records an image processing duration in milliseconds.
func ObserveImageDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	imageDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_update_total", "Total resume updates committed", resumeUpdateTotal.Load())
	writeCounter(&buf, "resume_update_failed_total", "Total resume updates rejected or failed", resumeUpdateFailedTotal.Load())
	writeCounter(&buf, "image_processed_total", "Total profile images processed", imageProcessedTotal.Load())
	writeCounter(&buf, "image_processing_failed_total", "Total profile image processing failures", imageFailedTotal.Load())
	writeCounter(&buf, "ai_request_total", "Total language-model requests", aiRequestTotal.Load())
	writeCounter(&buf, "ai_request_failed_total", "Total failed language-model requests", aiRequestFailedTotal.Load())
	writeHistogram(&buf, "image_processing_duration_ms", "Image processing duration in milliseconds", imageDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe stores value in its smallest matching bucket; rendering accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
