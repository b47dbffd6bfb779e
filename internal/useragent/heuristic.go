package useragent

import (
	"regexp"
	"strings"

	"github.com/hpowernl/nginx2json/pkg/models"
)

// Version extraction patterns for the heuristic classifier
var (
	edgeVersionRe    = regexp.MustCompile(`edge?/([0-9.]+)`)
	operaVersionRe   = regexp.MustCompile(`(?:opr|opera)[/ ]([0-9.]+)`)
	chromeVersionRe  = regexp.MustCompile(`chrome/([0-9.]+)`)
	firefoxVersionRe = regexp.MustCompile(`firefox/([0-9.]+)`)
	safariVersionRe  = regexp.MustCompile(`version/([0-9.]+)`)
	macVersionRe     = regexp.MustCompile(`mac os x ([0-9_.]+)`)
	androidVersionRe = regexp.MustCompile(`android ([0-9.]+)`)
	iosVersionRe     = regexp.MustCompile(`(?:iphone )?os ([0-9_]+)`)
)

// HeuristicClassifier classifies user agents with ordered substring and
// keyword rules. It is the fallback when the UA parsing library is not
// wanted; coverage is narrower but it has no dependencies.
type HeuristicClassifier struct{}

// NewHeuristicClassifier creates a new heuristic classifier
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// Variant returns the classifier variant name
func (c *HeuristicClassifier) Variant() string {
	return VariantHeuristic
}

// Classify derives browser, OS and device information from the UA string
func (c *HeuristicClassifier) Classify(uaString string) *models.UAInfo {
	info := emptyInfo()
	if uaString == "" || uaString == "-" {
		return info
	}

	lc := strings.ToLower(uaString)

	// Browser family. Edge and Opera embed Chrome tokens, so they are
	// checked first.
	switch {
	case strings.Contains(lc, "edg/") || strings.Contains(lc, "edge/"):
		setBrowser(info, "Edge", firstMatch(edgeVersionRe, lc))
	case strings.Contains(lc, "opr/") || strings.Contains(lc, "opera"):
		setBrowser(info, "Opera", firstMatch(operaVersionRe, lc))
	case strings.Contains(lc, "chrome/"):
		setBrowser(info, "Chrome", firstMatch(chromeVersionRe, lc))
	case strings.Contains(lc, "firefox/"):
		setBrowser(info, "Firefox", firstMatch(firefoxVersionRe, lc))
	case strings.Contains(lc, "safari/"):
		setBrowser(info, "Safari", firstMatch(safariVersionRe, lc))
	}

	// OS family and version
	switch {
	case strings.Contains(lc, "windows"):
		info.OS.Family = strPtr("Windows")
		info.OS.Version = windowsVersion(lc)
	case strings.Contains(lc, "iphone") || strings.Contains(lc, "ipad"):
		// iOS UAs carry a "like Mac OS X" token, so this check precedes macOS.
		info.OS.Family = strPtr("iOS")
		if v := firstMatch(iosVersionRe, lc); v != "" {
			info.OS.Version = strPtr(strings.ReplaceAll(v, "_", "."))
		}
	case strings.Contains(lc, "mac os x") || strings.Contains(lc, "macintosh"):
		info.OS.Family = strPtr("macOS")
		if v := firstMatch(macVersionRe, lc); v != "" {
			info.OS.Version = strPtr(strings.ReplaceAll(v, "_", "."))
		}
	case strings.Contains(lc, "android"):
		info.OS.Family = strPtr("Android")
		if v := firstMatch(androidVersionRe, lc); v != "" {
			info.OS.Version = strPtr(v)
		}
	case strings.Contains(lc, "linux"):
		info.OS.Family = strPtr("Linux")
	}

	applyDevice(info, lc, false, false)

	return info
}

func setBrowser(info *models.UAInfo, family, version string) {
	info.Browser.Family = strPtr(family)
	info.Browser.Version = ptrNonEmpty(version)
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
