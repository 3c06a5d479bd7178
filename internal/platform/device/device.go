// Package device turns raw User-Agent strings into short display names
// recorded on login audit events.
package device

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a human-readable "Browser on Platform" string.
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	platform := parsed.Platform()
	if parsed.Mobile() && parsed.Model() != "" {
		platform = parsed.Model()
	}

	if browser == "" {
		browser = "Unknown Browser"
	}
	if platform == "" {
		platform = parsed.OS()
	}
	if platform == "" {
		platform = "Unknown Platform"
	}

	return fmt.Sprintf("%s on %s", browser, platform)
}
