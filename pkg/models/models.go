package models

// Device types reported in the UA classification.
const (
	DevicePC      = "PC"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceBot     = "Bot"
	DeviceUnknown = "Unknown"
)

// LogRecord is the output record for a single input line. Every input line
// produces exactly one record; when parsing fails the structured fields stay
// null and the raw text is preserved.
type LogRecord struct {
	LineNumber int    `json:"line_number"`
	ParseOK    bool   `json:"parse_ok"`
	Error      string `json:"error,omitempty"`
	Raw        string `json:"raw,omitempty"`

	RemoteAddr *string `json:"remote_addr"`
	RemoteUser *string `json:"remote_user"`

	TimeLocal  *string `json:"time_local"`
	TimeISOUTC *string `json:"time_iso_utc"`

	Request  *string `json:"request"`
	Method   *string `json:"method"`
	Path     *string `json:"path"`
	Protocol *string `json:"protocol"`

	Status        *int   `json:"status"`
	BodyBytesSent *int64 `json:"body_bytes_sent"`

	HTTPReferer   *string `json:"http_referer"`
	HTTPUserAgent *string `json:"http_user_agent"`

	UA *UAInfo `json:"ua"`
}

// UAInfo contains the parsed user agent classification.
type UAInfo struct {
	Browser BrowserInfo `json:"browser"`
	OS      OSInfo      `json:"os"`
	Device  DeviceInfo  `json:"device"`
}

// BrowserInfo identifies the browser family and version.
type BrowserInfo struct {
	Family  *string `json:"family"`
	Version *string `json:"version"`
}

// OSInfo identifies the operating system family and version.
type OSInfo struct {
	Family  *string `json:"family"`
	Version *string `json:"version"`
}

// DeviceInfo identifies the device category and, when known, the device
// family (e.g. "iPad").
type DeviceInfo struct {
	Family   *string `json:"family"`
	Type     string  `json:"type"`
	IsMobile bool    `json:"is_mobile"`
	IsTablet bool    `json:"is_tablet"`
	IsPC     bool    `json:"is_pc"`
	IsBot    bool    `json:"is_bot"`
}

// RunMetadata describes a processing run, emitted under wrap mode.
type RunMetadata struct {
	Source          string `json:"source"`
	GeneratedAt     string `json:"generated_at"`
	DurationMS      int64  `json:"duration_ms"`
	TotalLines      int    `json:"total_lines"`
	ParseErrors     int    `json:"parse_errors"`
	UserAgentParser string `json:"user_agent_parser"`
}

// Document wraps the record list with run metadata (wrap mode output).
type Document struct {
	Metadata RunMetadata  `json:"metadata"`
	Entries  []*LogRecord `json:"entries"`
}

// Summary contains aggregated statistics for a full run.
type Summary struct {
	TotalLines       int           `json:"total_lines"`
	ParsedLines      int           `json:"parsed_lines"`
	ParseErrors      int           `json:"parse_errors"`
	UniqueIPs        int           `json:"unique_ips"`
	TotalBytes       int64         `json:"total_bytes"`
	Bytes            *BytesStats   `json:"bytes,omitempty"`
	Browsers         []BrowserStat `json:"browsers"`
	OperatingSystems []OSStat      `json:"operating_systems"`
	Devices          []DeviceStat  `json:"devices"`
	Statuses         []StatusStat  `json:"statuses"`
	Methods          []MethodStat  `json:"methods"`
}

// BrowserStat contains the request count for a browser family.
type BrowserStat struct {
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

// OSStat contains the request count for an OS family + version.
type OSStat struct {
	OS    string `json:"os"`
	Count int64  `json:"count"`
}

// DeviceStat contains the request count for a device type.
type DeviceStat struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

// StatusStat contains the request count for an HTTP status code.
type StatusStat struct {
	Status int    `json:"status"`
	Class  string `json:"class"`
	Count  int64  `json:"count"`
}

// MethodStat contains the request count for an HTTP method.
type MethodStat struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
}

// BytesStats contains response size statistics across parsed records.
type BytesStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
	Max    int64   `json:"max"`
}
