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
	resumeSubmitTotal     atomic.Uint64
	resumeSubmitSucceeded atomic.Uint64
	resumeSubmitFailed    atomic.Uint64
	chatbotPayloadsTotal  atomic.Uint64
	resumesSavedTotal     atomic.Uint64
	rateLimitedTotal      atomic.Uint64

	resumeEventsReceived      atomic.Uint64
	resumeEventsCompleted     atomic.Uint64
	resumeEventsFailed        atomic.Uint64
	resumeEventsUnrecoverable atomic.Uint64

	resumeSubmitDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000})
)

// IncResumeSubmit counts a submission sent to the save endpoint.
func IncResumeSubmit() {
	resumeSubmitTotal.Add(1)
}

// IncResumeSubmitSucceeded counts a submission the save endpoint confirmed.
func IncResumeSubmitSucceeded() {
	resumeSubmitSucceeded.Add(1)
}

// IncResumeSubmitFailed counts a rejected or failed submission.
func IncResumeSubmitFailed() {
	resumeSubmitFailed.Add(1)
}

// IncChatbotPayloads counts resume payloads collected from the chat widget.
func IncChatbotPayloads() {
	chatbotPayloadsTotal.Add(1)
}

// IncResumesSaved counts resumes persisted by the save endpoint.
func IncResumesSaved() {
	resumesSavedTotal.Add(1)
}

// IncRateLimited counts requests rejected by the rate limiter.
func IncRateLimited() {
	rateLimitedTotal.Add(1)
}

// IncResumeEventsReceived counts resume.saved events pulled by the worker.
func IncResumeEventsReceived() {
	resumeEventsReceived.Add(1)
}

// IncResumeEventsCompleted counts events processed and acknowledged.
func IncResumeEventsCompleted() {
	resumeEventsCompleted.Add(1)
}

// IncResumeEventsFailed counts events left on the queue for redelivery.
func IncResumeEventsFailed() {
	resumeEventsFailed.Add(1)
}

// IncResumeEventsUnrecoverable counts events dropped because they can never succeed.
func IncResumeEventsUnrecoverable() {
	resumeEventsUnrecoverable.Add(1)
}

// ObserveResumeSubmitDurationMs records a submission round trip in milliseconds.
func ObserveResumeSubmitDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	resumeSubmitDuration.Observe(value)
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
	writeCounter(&buf, "resume_submit_total", "Total resume submissions sent to the save endpoint", resumeSubmitTotal.Load())
	writeCounter(&buf, "resume_submit_succeeded_total", "Total resume submissions confirmed", resumeSubmitSucceeded.Load())
	writeCounter(&buf, "resume_submit_failed_total", "Total resume submissions rejected or failed", resumeSubmitFailed.Load())
	writeCounter(&buf, "chatbot_payloads_total", "Total resume payloads collected from the chat widget", chatbotPayloadsTotal.Load())
	writeCounter(&buf, "resumes_saved_total", "Total resumes persisted by the save endpoint", resumesSavedTotal.Load())
	writeCounter(&buf, "http_rate_limited_total", "Total requests rejected by the rate limiter", rateLimitedTotal.Load())
	writeCounter(&buf, "resume_events_received_total", "Total resume.saved events received by the worker", resumeEventsReceived.Load())
	writeCounter(&buf, "resume_events_completed_total", "Total resume.saved events processed", resumeEventsCompleted.Load())
	writeCounter(&buf, "resume_events_failed_total", "Total resume.saved events that failed and will be retried", resumeEventsFailed.Load())
	writeCounter(&buf, "resume_events_unrecoverable_total", "Total resume.saved events dropped as unrecoverable", resumeEventsUnrecoverable.Load())
	writeHistogram(&buf, "resume_submit_duration_ms", "Resume submission duration in milliseconds", resumeSubmitDuration.Snapshot())
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
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
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
