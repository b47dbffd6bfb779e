package config

// BotSignatures contains user agent signatures for bot detection
var BotSignatures = map[string]bool{
	// Traditional bots
	"googlebot": true, "bingbot": true, "slurp": true, "duckduckbot": true, "baiduspider": true,
	"yandexbot": true, "facebookexternalhit": true, "twitterbot": true, "linkedinbot": true,
	"whatsapp": true, "telegrambot": true, "applebot": true, "amazonbot": true, "crawl": true,
	"crawler": true, "spider": true, "bot": true, "scraper": true, "curl": true, "wget": true,
	"python-requests": true, "postman": true, "insomnia": true, "httpie": true,

	// AI and LLM bots
	"chatgpt": true, "gptbot": true, "openai": true, "claude-web": true, "anthropic-ai": true,
	"perplexitybot": true, "ccbot": true, "bytespider": true, "ai2bot": true,

	// Monitoring
	"uptimerobot": true, "pingdom": true, "newrelic": true,
}

// StatusGroups defines HTTP status code classes
var StatusGroups = map[string][]int{
	"success":      {200, 201, 202, 204, 206},
	"redirect":     {301, 302, 303, 304, 307, 308},
	"client_error": {400, 401, 403, 404, 405, 406, 409, 410, 422, 429},
	"server_error": {500, 501, 502, 503, 504, 505},
}

// StatusClass returns the class name for an HTTP status code
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "success"
	case status >= 300 && status < 400:
		return "redirect"
	case status >= 400 && status < 500:
		return "client_error"
	case status >= 500 && status < 600:
		return "server_error"
	default:
		return "other"
	}
}

// HTTP methods
var HTTPMethods = []string{
	"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE", "CONNECT",
}

// Scanner buffer sizes for reading log files
const (
	ScannerInitialBuffer = 64 * 1024
	ScannerMaxBuffer     = 1024 * 1024
)
