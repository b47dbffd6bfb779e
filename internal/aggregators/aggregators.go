package aggregators

import (
	"sort"
	"sync"

	"github.com/montanaflynn/stats"

	"github.com/hpowernl/nginx2json/internal/config"
	"github.com/hpowernl/nginx2json/pkg/models"
)

// SummaryAggregator aggregates statistics from log records. Accumulation is
// commutative, so records may be added in any order.
type SummaryAggregator struct {
	mu            sync.RWMutex
	totalLines    int
	parsedLines   int
	parseErrors   int
	ips           map[string]bool
	browserCounts map[string]int64
	osCounts      map[string]int64
	deviceCounts  map[string]int64
	statusCounts  map[int]int64
	methodCounts  map[string]int64
	totalBytes    int64
	byteSamples   []float64
}

// NewSummaryAggregator creates a new summary aggregator
func NewSummaryAggregator() *SummaryAggregator {
	return &SummaryAggregator{
		ips:           make(map[string]bool),
		browserCounts: make(map[string]int64),
		osCounts:      make(map[string]int64),
		deviceCounts:  make(map[string]int64),
		statusCounts:  make(map[int]int64),
		methodCounts:  make(map[string]int64),
	}
}

// Add adds a log record to the aggregator. Failed records only contribute to
// the line and error tallies.
func (a *SummaryAggregator) Add(record *models.LogRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalLines++
	if !record.ParseOK {
		a.parseErrors++
		return
	}
	a.parsedLines++

	if record.RemoteAddr != nil {
		a.ips[*record.RemoteAddr] = true
	}
	if record.Status != nil {
		a.statusCounts[*record.Status]++
	}
	if record.Method != nil {
		a.methodCounts[*record.Method]++
	}
	if record.BodyBytesSent != nil {
		a.totalBytes += *record.BodyBytesSent
		a.byteSamples = append(a.byteSamples, float64(*record.BodyBytesSent))
	}

	if record.UA != nil {
		a.browserCounts[familyLabel(record.UA.Browser.Family)]++
		a.osCounts[osLabel(record.UA.OS)]++
		if record.UA.Device.Type != "" {
			a.deviceCounts[record.UA.Device.Type]++
		}
	}
}

// GetSummary returns the aggregated statistics
func (a *SummaryAggregator) GetSummary() *models.Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	summary := &models.Summary{
		TotalLines:  a.totalLines,
		ParsedLines: a.parsedLines,
		ParseErrors: a.parseErrors,
		UniqueIPs:   len(a.ips),
		TotalBytes:  a.totalBytes,
	}

	if len(a.byteSamples) > 0 {
		byteStats := &models.BytesStats{}
		byteStats.Mean, _ = stats.Mean(a.byteSamples)
		byteStats.Median, _ = stats.Median(a.byteSamples)
		if p95, err := stats.Percentile(a.byteSamples, 95); err == nil {
			byteStats.P95 = p95
		}
		if max, err := stats.Max(a.byteSamples); err == nil {
			byteStats.Max = int64(max)
		}
		summary.Bytes = byteStats
	}

	summary.Browsers = a.browserStats()
	summary.OperatingSystems = a.osStats()
	summary.Devices = a.deviceStats()
	summary.Statuses = a.statusStats()
	summary.Methods = a.methodStats()

	return summary
}

func (a *SummaryAggregator) browserStats() []models.BrowserStat {
	out := make([]models.BrowserStat, 0, len(a.browserCounts))
	for browser, count := range a.browserCounts {
		out = append(out, models.BrowserStat{Browser: browser, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Browser < out[j].Browser
	})
	return out
}

func (a *SummaryAggregator) osStats() []models.OSStat {
	out := make([]models.OSStat, 0, len(a.osCounts))
	for os, count := range a.osCounts {
		out = append(out, models.OSStat{OS: os, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].OS < out[j].OS
	})
	return out
}

func (a *SummaryAggregator) deviceStats() []models.DeviceStat {
	out := make([]models.DeviceStat, 0, len(a.deviceCounts))
	for device, count := range a.deviceCounts {
		out = append(out, models.DeviceStat{Device: device, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Device < out[j].Device
	})
	return out
}

func (a *SummaryAggregator) statusStats() []models.StatusStat {
	out := make([]models.StatusStat, 0, len(a.statusCounts))
	for status, count := range a.statusCounts {
		out = append(out, models.StatusStat{
			Status: status,
			Class:  config.StatusClass(status),
			Count:  count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func (a *SummaryAggregator) methodStats() []models.MethodStat {
	out := make([]models.MethodStat, 0, len(a.methodCounts))
	for method, count := range a.methodCounts {
		out = append(out, models.MethodStat{Method: method, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func familyLabel(family *string) string {
	if family == nil || *family == "" {
		return "Unknown"
	}
	return *family
}

// osLabel formats "family version" for counting, e.g. "Windows 10"
func osLabel(os models.OSInfo) string {
	if os.Family == nil || *os.Family == "" {
		return "Unknown"
	}
	if os.Version != nil && *os.Version != "" {
		return *os.Family + " " + *os.Version
	}
	return *os.Family
}
