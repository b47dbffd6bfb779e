package logreader

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hpowernl/nginx2json/internal/config"
	"github.com/hpowernl/nginx2json/internal/parser"
	"github.com/hpowernl/nginx2json/pkg/models"
)

// LogReader streams log records from files or stdin. Records arrive in input
// order, one per line, with their original line numbers.
type LogReader struct {
	parser *parser.LineParser
}

// New creates a log reader backed by the given line parser
func New(p *parser.LineParser) *LogReader {
	return &LogReader{parser: p}
}

// Read reads the given path, or stdin when path is "-"
func (r *LogReader) Read(ctx context.Context, path string) (<-chan *models.LogRecord, <-chan error) {
	if path == "-" || strings.EqualFold(path, "stdin") {
		return r.ReadStdin(ctx)
	}
	return r.ReadFile(ctx, path)
}

// ReadFile reads a log file and returns a channel of log records
func (r *LogReader) ReadFile(ctx context.Context, path string) (<-chan *models.LogRecord, <-chan error) {
	recordChan := make(chan *models.LogRecord, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(recordChan)
		defer close(errorChan)

		file, err := r.openFile(path)
		if err != nil {
			errorChan <- fmt.Errorf("failed to open file: %w", err)
			return
		}
		defer file.Close()

		if err := r.scan(ctx, file, recordChan); err != nil {
			errorChan <- fmt.Errorf("error reading %s: %w", path, err)
		}
	}()

	return recordChan, errorChan
}

// ReadStdin reads log records from stdin
func (r *LogReader) ReadStdin(ctx context.Context) (<-chan *models.LogRecord, <-chan error) {
	recordChan := make(chan *models.LogRecord, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(recordChan)
		defer close(errorChan)

		if err := r.scan(ctx, os.Stdin, recordChan); err != nil {
			errorChan <- fmt.Errorf("error reading stdin: %w", err)
		}
	}()

	return recordChan, errorChan
}

// scan emits one record per line, preserving line numbers
func (r *LogReader) scan(ctx context.Context, in io.Reader, out chan<- *models.LogRecord) error {
	scanner := bufio.NewScanner(in)
	// Increase buffer size for large log lines
	buf := make([]byte, 0, config.ScannerInitialBuffer)
	scanner.Buffer(buf, config.ScannerMaxBuffer)

	lineNumber := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			lineNumber++
			out <- r.parser.ParseLine(scanner.Text(), lineNumber)
		}
	}

	return scanner.Err()
}

// openFile opens a file, handling gzip compression
func (r *LogReader) openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".gz") {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &gzipReadCloser{gzReader, file}, nil
	}

	return file, nil
}

// gzipReadCloser wraps a gzip.Reader and underlying file
type gzipReadCloser struct {
	gzReader *gzip.Reader
	file     *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gzReader.Read(p)
}

func (g *gzipReadCloser) Close() error {
	g.gzReader.Close()
	return g.file.Close()
}
