package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hpowernl/nginx2json/internal/useragent"
	"github.com/hpowernl/nginx2json/pkg/models"
)

// combinedRegexp matches the Nginx "combined" log format:
//
//	$remote_addr - $remote_user [$time_local] "$request" $status $body_bytes_sent "$http_referer" "$http_user_agent"
var combinedRegexp = regexp.MustCompile(
	`^(\S+)\s+(\S+)\s+(\S+)\s+\[([^\]]+)\]\s+"([^"]*)"\s+(\d{3})\s+(\S+)\s+"([^"]*)"\s+"([^"]*)"`)

// nginxTimeLayout is the time_local format, e.g. 12/Sep/2025:09:12:03 +0800
const nginxTimeLayout = "02/Jan/2006:15:04:05 -0700"

// Failure reasons recorded on unparsable lines
const (
	ReasonEmptyLine      = "empty line"
	ReasonFormatMismatch = "line does not match combined log format"
)

// LineParser parses combined-format access log lines and enriches them with
// user agent classification.
type LineParser struct {
	classifier useragent.Classifier
}

// New creates a line parser using the given UA classifier
func New(classifier useragent.Classifier) *LineParser {
	return &LineParser{classifier: classifier}
}

// ParseLine parses a single log line into a record. It never fails the run:
// unparsable lines come back with ParseOK=false, the failure reason and the
// raw text preserved.
func (p *LineParser) ParseLine(line string, lineNumber int) *models.LogRecord {
	raw := strings.TrimRight(line, "\r\n")

	if strings.TrimSpace(raw) == "" {
		return &models.LogRecord{
			LineNumber: lineNumber,
			ParseOK:    false,
			Error:      ReasonEmptyLine,
			Raw:        raw,
		}
	}

	m := combinedRegexp.FindStringSubmatch(raw)
	if m == nil {
		return &models.LogRecord{
			LineNumber: lineNumber,
			ParseOK:    false,
			Error:      ReasonFormatMismatch,
			Raw:        raw,
		}
	}

	record := &models.LogRecord{
		LineNumber: lineNumber,
		ParseOK:    true,
		RemoteAddr: strPtr(m[1]),
		RemoteUser: dashNil(m[3]),
		TimeLocal:  strPtr(m[4]),
		TimeISOUTC: strPtr(toISOUTC(m[4])),
		Request:    strPtr(m[5]),
	}

	record.Method, record.Path, record.Protocol = splitRequest(m[5])

	status, _ := strconv.Atoi(m[6])
	record.Status = &status

	bytesSent := parseBytes(m[7])
	record.BodyBytesSent = &bytesSent

	record.HTTPReferer = dashNil(m[8])
	record.HTTPUserAgent = ptrNonEmpty(m[9])
	record.UA = p.classifier.Classify(m[9])

	return record
}

// splitRequest splits "METHOD PATH PROTOCOL" with the method as the first
// token and the protocol as the last token starting with HTTP/. Everything
// in between is the path, so paths with embedded spaces survive.
func splitRequest(request string) (method, path, protocol *string) {
	fields := strings.Fields(request)
	if len(fields) == 0 {
		return nil, nil, nil
	}

	method = strPtr(fields[0])
	rest := fields[1:]

	if len(rest) > 0 {
		last := rest[len(rest)-1]
		if strings.HasPrefix(strings.ToUpper(last), "HTTP/") {
			protocol = strPtr(last)
			rest = rest[:len(rest)-1]
		}
	}

	if len(rest) > 0 {
		path = strPtr(strings.Join(rest, " "))
	}

	return method, path, protocol
}

// toISOUTC converts time_local into an RFC3339 UTC timestamp. If conversion
// fails the original string is passed through unchanged.
func toISOUTC(timeLocal string) string {
	t, err := time.Parse(nginxTimeLayout, timeLocal)
	if err != nil {
		return timeLocal
	}
	return t.UTC().Format(time.RFC3339)
}

// parseBytes converts body_bytes_sent, tolerating the "-" placeholder
func parseBytes(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func strPtr(s string) *string {
	return &s
}

func ptrNonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// dashNil maps the Nginx "-" placeholder (and empty values) to null
func dashNil(s string) *string {
	if s == "" || s == "-" {
		return nil
	}
	return &s
}
