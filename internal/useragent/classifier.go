package useragent

import (
	"fmt"
	"strings"

	"github.com/hpowernl/nginx2json/internal/config"
	"github.com/hpowernl/nginx2json/pkg/models"
)

// Classifier variant names, recorded in run metadata
const (
	VariantLibrary   = "mssola/useragent"
	VariantHeuristic = "heuristics"
)

// Classifier turns a raw User-Agent header value into structured browser,
// OS and device information. Implementations must handle empty input.
type Classifier interface {
	Classify(uaString string) *models.UAInfo
	Variant() string
}

// Select returns the classifier for a variant name. "auto" and "library"
// select the library-backed classifier, "heuristic" the keyword fallback.
func Select(name string) (Classifier, error) {
	switch name {
	case "", "auto", "library":
		return NewLibraryClassifier(), nil
	case "heuristic", "heuristics":
		return NewHeuristicClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier variant: %q", name)
	}
}

// emptyInfo is the default shape when the UA is missing or unknown.
func emptyInfo() *models.UAInfo {
	return &models.UAInfo{
		Device: models.DeviceInfo{Type: models.DeviceUnknown},
	}
}

// isBotUA matches the UA against the known bot signature table.
func isBotUA(uaLower string) bool {
	for signature := range config.BotSignatures {
		if strings.Contains(uaLower, signature) {
			return true
		}
	}
	return false
}

// looksLikeTablet reports whether the UA carries an explicit tablet marker.
// Android tablets often report both "Tablet" and "Mobile"; the tablet token
// wins so they are not misclassified as Mobile.
func looksLikeTablet(uaLower string) bool {
	return strings.Contains(uaLower, "tablet") ||
		strings.Contains(uaLower, "ipad") ||
		strings.Contains(uaLower, "sm-t")
}

// windowsVersion maps Windows NT tokens to marketing versions. Many Win11
// UAs still report "Windows NT 10.0"; only an explicit "Windows 11" token
// upgrades the version.
func windowsVersion(uaLower string) *string {
	switch {
	case strings.Contains(uaLower, "windows nt 6.1"):
		return strPtr("7")
	case strings.Contains(uaLower, "windows nt 6.2"):
		return strPtr("8")
	case strings.Contains(uaLower, "windows nt 6.3"):
		return strPtr("8.1")
	case strings.Contains(uaLower, "windows nt 10.0"):
		if strings.Contains(uaLower, "windows 11") {
			return strPtr("11")
		}
		return strPtr("10")
	}
	return nil
}

// applyDevice fills the device section according to the priority order:
// bot signatures, tablet markers, mobile markers, then PC.
func applyDevice(info *models.UAInfo, uaLower string, libraryBot, libraryMobile bool) {
	switch {
	case libraryBot || isBotUA(uaLower):
		info.Device.Type = models.DeviceBot
		info.Device.IsBot = true
	case looksLikeTablet(uaLower):
		info.Device.Type = models.DeviceTablet
		info.Device.IsTablet = true
		if strings.Contains(uaLower, "ipad") {
			info.Device.Family = strPtr("iPad")
		}
	case libraryMobile || strings.Contains(uaLower, "mobile") || strings.Contains(uaLower, "iphone"):
		info.Device.Type = models.DeviceMobile
		info.Device.IsMobile = true
		if strings.Contains(uaLower, "iphone") {
			info.Device.Family = strPtr("iPhone")
		}
	default:
		info.Device.Type = models.DevicePC
		info.Device.IsPC = true
	}
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
