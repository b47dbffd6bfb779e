package useragent

import (
	"strings"

	mssola "github.com/mssola/useragent"

	"github.com/hpowernl/nginx2json/pkg/models"
)

// LibraryClassifier delegates browser and OS detection to
// github.com/mssola/useragent. Device classification keeps the same priority
// rules as the heuristic classifier, since the library does not distinguish
// tablets from phones.
type LibraryClassifier struct{}

// NewLibraryClassifier creates a new library-backed classifier
func NewLibraryClassifier() *LibraryClassifier {
	return &LibraryClassifier{}
}

// Variant returns the classifier variant name
func (c *LibraryClassifier) Variant() string {
	return VariantLibrary
}

// Classify derives browser, OS and device information from the UA string
func (c *LibraryClassifier) Classify(uaString string) *models.UAInfo {
	info := emptyInfo()
	if uaString == "" || uaString == "-" {
		return info
	}

	ua := mssola.New(uaString)
	lc := strings.ToLower(uaString)

	browser, version := ua.Browser()
	info.Browser.Family = ptrNonEmpty(browser)
	info.Browser.Version = ptrNonEmpty(version)

	osInfo := ua.OSInfo()
	info.OS.Family = ptrNonEmpty(osInfo.Name)
	info.OS.Version = ptrNonEmpty(osInfo.Version)

	// The library reports NT versions as-is; apply the marketing-version
	// mapping, including the Windows 11 token check.
	if strings.Contains(lc, "windows") {
		if v := windowsVersion(lc); v != nil {
			info.OS.Family = strPtr("Windows")
			info.OS.Version = v
		}
	}

	applyDevice(info, lc, ua.Bot(), ua.Mobile())

	return info
}
