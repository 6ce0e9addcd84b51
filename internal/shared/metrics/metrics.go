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
	documentsCreatedTotal atomic.Uint64
	documentsUpdatedTotal atomic.Uint64
	documentsDeletedTotal atomic.Uint64
	filesUploadedTotal    atomic.Uint64

	uploadSizeBytes = newHistogram([]float64{
		64 << 10, 256 << 10, 1 << 20, 4 << 20, 8 << 20, 15 << 20,
	})
)

// IncDocumentCreated increments the created counter.
func IncDocumentCreated() {
	documentsCreatedTotal.Add(1)
}

// IncDocumentUpdated increments the updated counter.
func IncDocumentUpdated() {
	documentsUpdatedTotal.Add(1)
}

// IncDocumentDeleted increments the deleted counter.
func IncDocumentDeleted() {
	documentsDeletedTotal.Add(1)
}

// IncFileUploaded increments the upload counter.
func IncFileUploaded() {
	filesUploadedTotal.Add(1)
}

// ObserveUploadSizeBytes records the size of an uploaded attachment.
func ObserveUploadSizeBytes(value float64) {
	if value < 0 {
		value = 0
	}
	uploadSizeBytes.Observe(value)
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
	writeCounter(&buf, "documents_created_total", "Total documents created", documentsCreatedTotal.Load())
	writeCounter(&buf, "documents_updated_total", "Total documents updated", documentsUpdatedTotal.Load())
	writeCounter(&buf, "documents_deleted_total", "Total documents deleted", documentsDeletedTotal.Load())
	writeCounter(&buf, "files_uploaded_total", "Total attachments uploaded", filesUploadedTotal.Load())
	writeHistogram(&buf, "upload_size_bytes", "Attachment size in bytes", uploadSizeBytes.Snapshot())
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
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
