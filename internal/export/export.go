package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hpowernl/nginx2json/pkg/models"
)

// DataExporter writes run output: the JSON record list, the plain-text error
// log, and optional summary exports.
type DataExporter struct{}

// NewDataExporter creates a new data exporter
func NewDataExporter() *DataExporter {
	return &DataExporter{}
}

// WriteRecords writes the record list as JSON to path ("-" for stdout). Under
// wrap mode the list is embedded in a {metadata, entries} document.
func (e *DataExporter) WriteRecords(records []*models.LogRecord, path string, pretty, wrap bool, meta *models.RunMetadata) error {
	if records == nil {
		records = []*models.LogRecord{}
	}

	var payload any = records
	if wrap {
		doc := &models.Document{Entries: records}
		if meta != nil {
			doc.Metadata = *meta
		}
		payload = doc
	}

	w, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	defer closeFn()

	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// WriteErrorLog writes one line per failed record: line number, failure
// reason and the offending raw text, tab separated.
func (e *DataExporter) WriteErrorLog(records []*models.LogRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	for _, record := range records {
		if record.ParseOK {
			continue
		}
		fmt.Fprintf(file, "%d\t%s\t%s\n", record.LineNumber, record.Error, record.Raw)
	}

	return nil
}

// ExportSummaryCSV exports summary statistics to CSV format
func (e *DataExporter) ExportSummaryCSV(summary *models.Summary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}

	rows := [][]string{
		{"Total Lines", fmt.Sprintf("%d", summary.TotalLines)},
		{"Parsed Lines", fmt.Sprintf("%d", summary.ParsedLines)},
		{"Parse Errors", fmt.Sprintf("%d", summary.ParseErrors)},
		{"Unique IPs", fmt.Sprintf("%d", summary.UniqueIPs)},
		{"Total Bytes", fmt.Sprintf("%d", summary.TotalBytes)},
	}
	for _, browser := range summary.Browsers {
		rows = append(rows, []string{"Browser: " + browser.Browser, fmt.Sprintf("%d", browser.Count)})
	}
	for _, osStat := range summary.OperatingSystems {
		rows = append(rows, []string{"OS: " + osStat.OS, fmt.Sprintf("%d", osStat.Count)})
	}
	for _, device := range summary.Devices {
		rows = append(rows, []string{"Device: " + device.Device, fmt.Sprintf("%d", device.Count)})
	}
	for _, status := range summary.Statuses {
		rows = append(rows, []string{fmt.Sprintf("Status: %d", status.Status), fmt.Sprintf("%d", status.Count)})
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// ExportSummaryJSON exports summary statistics to JSON format
func (e *DataExporter) ExportSummaryJSON(summary *models.Summary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// openOutput opens path for writing, mapping "-" to stdout
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, file.Close, nil
}
