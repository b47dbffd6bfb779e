package parser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpowernl/nginx2json/internal/parser"
	"github.com/hpowernl/nginx2json/internal/useragent"
	"github.com/hpowernl/nginx2json/pkg/models"
)

func newParser(t *testing.T) *parser.LineParser {
	t.Helper()
	return parser.New(useragent.NewHeuristicClassifier())
}

func TestParseLineBasic(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	line := `203.0.113.10 - - [12/Sep/2025:09:12:03 +0800] "GET / HTTP/1.1" 200 1450 "-" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.6045.200 Safari/537.36"`
	rec := p.ParseLine(line, 1)

	require.True(t, rec.ParseOK)
	assert.Equal(t, 1, rec.LineNumber)
	assert.Empty(t, rec.Error)

	require.NotNil(t, rec.RemoteAddr)
	assert.Equal(t, "203.0.113.10", *rec.RemoteAddr)
	assert.Nil(t, rec.RemoteUser)

	require.NotNil(t, rec.Method)
	assert.Equal(t, "GET", *rec.Method)
	require.NotNil(t, rec.Path)
	assert.Equal(t, "/", *rec.Path)
	require.NotNil(t, rec.Protocol)
	assert.Equal(t, "HTTP/1.1", *rec.Protocol)

	require.NotNil(t, rec.Status)
	assert.Equal(t, 200, *rec.Status)
	require.NotNil(t, rec.BodyBytesSent)
	assert.Equal(t, int64(1450), *rec.BodyBytesSent)

	assert.Nil(t, rec.HTTPReferer)
	require.NotNil(t, rec.HTTPUserAgent)

	require.NotNil(t, rec.UA)
	require.NotNil(t, rec.UA.OS.Family)
	assert.Equal(t, "Windows", *rec.UA.OS.Family)
	assert.Equal(t, models.DevicePC, rec.UA.Device.Type)
}

func TestParseLineTimestampConversion(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	line := `203.0.113.10 - - [12/Sep/2025:09:12:03 +0800] "GET / HTTP/1.1" 200 1450 "-" "curl/8.0"`
	rec := p.ParseLine(line, 1)
	require.True(t, rec.ParseOK)

	require.NotNil(t, rec.TimeLocal)
	assert.Equal(t, "12/Sep/2025:09:12:03 +0800", *rec.TimeLocal)

	require.NotNil(t, rec.TimeISOUTC)
	assert.Equal(t, "2025-09-12T01:12:03Z", *rec.TimeISOUTC)

	// The ISO timestamp must denote the same instant as time_local.
	local, err := time.Parse("02/Jan/2006:15:04:05 -0700", *rec.TimeLocal)
	require.NoError(t, err)
	iso, err := time.Parse(time.RFC3339, *rec.TimeISOUTC)
	require.NoError(t, err)
	assert.True(t, local.Equal(iso))
}

func TestParseLineMalformed(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	// Request line without quotes does not match the combined format.
	line := `203.0.113.10 - - [12/Sep/2025:09:12:03 +0800] GET / HTTP/1.1 200 1450 "-" "UA"`
	rec := p.ParseLine(line, 5)

	assert.False(t, rec.ParseOK)
	assert.Equal(t, 5, rec.LineNumber)
	assert.Equal(t, parser.ReasonFormatMismatch, rec.Error)
	assert.Equal(t, line, rec.Raw)

	// Structured fields stay null.
	assert.Nil(t, rec.RemoteAddr)
	assert.Nil(t, rec.Status)
	assert.Nil(t, rec.BodyBytesSent)
	assert.Nil(t, rec.UA)
}

func TestParseLineEmpty(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	rec := p.ParseLine("", 3)
	assert.False(t, rec.ParseOK)
	assert.Equal(t, parser.ReasonEmptyLine, rec.Error)

	rec = p.ParseLine("   \r\n", 4)
	assert.False(t, rec.ParseOK)
	assert.Equal(t, parser.ReasonEmptyLine, rec.Error)
}

func TestParseLinePathWithSpaces(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	line := `203.0.113.77 - - [12/Sep/2025:09:13:01 +0800] "GET /reports Q1 HTTP/1.1" 200 1234 "-" "curl/8.0"`
	rec := p.ParseLine(line, 10)

	require.True(t, rec.ParseOK)
	require.NotNil(t, rec.Method)
	assert.Equal(t, "GET", *rec.Method)
	require.NotNil(t, rec.Path)
	assert.Equal(t, "/reports Q1", *rec.Path)
	require.NotNil(t, rec.Protocol)
	assert.Equal(t, "HTTP/1.1", *rec.Protocol)
}

func TestParseLineHTTP2Protocol(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	line := `203.0.113.55 - - [12/Sep/2025:09:12:27 +0800] "GET /dashboard HTTP/2.0" 200 4096 "-" "curl/8.0"`
	rec := p.ParseLine(line, 9)

	require.True(t, rec.ParseOK)
	require.NotNil(t, rec.Protocol)
	assert.Equal(t, "HTTP/2.0", *rec.Protocol)
}

func TestParseLineDashBytesAndReferer(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	line := `198.51.100.88 - - [12/Sep/2025:09:12:40 +0800] "GET /static/logo.png HTTP/1.1" 404 - "https://example.com/page" "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:119.0) Gecko/20100101 Firefox/119.0"`
	rec := p.ParseLine(line, 8)

	require.True(t, rec.ParseOK)
	require.NotNil(t, rec.Status)
	assert.Equal(t, 404, *rec.Status)
	require.NotNil(t, rec.BodyBytesSent)
	assert.Equal(t, int64(0), *rec.BodyBytesSent)
	require.NotNil(t, rec.HTTPReferer)
	assert.Equal(t, "https://example.com/page", *rec.HTTPReferer)
}

func TestParseLineRemoteUser(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	line := `127.0.0.1 - frank [12/Sep/2025:09:12:03 +0800] "POST /api HTTP/1.1" 201 12 "-" "curl/8.0"`
	rec := p.ParseLine(line, 1)

	require.True(t, rec.ParseOK)
	require.NotNil(t, rec.RemoteUser)
	assert.Equal(t, "frank", *rec.RemoteUser)
}
