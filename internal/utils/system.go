package utils

import (
	"os"
	"regexp"
	"strings"
)

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// SanitizeDeviceName sanitizes a device name by removing special characters and converting spaces to hyphens.
func SanitizeDeviceName(name string) string {
	// Trim whitespace.
	name = strings.TrimSpace(name)

	// Convert to lowercase.
	name = strings.ToLower(name)

	// Replace spaces with hyphens.
	name = strings.ReplaceAll(name, " ", "-")

	// Remove any characters that are not alphanumeric, hyphens, or underscores.
	re := regexp.MustCompile(`[^a-z0-9\-_]`)
	name = re.ReplaceAllString(name, "")

	// Remove consecutive hyphens.
	re = regexp.MustCompile(`-+`)
	name = re.ReplaceAllString(name, "-")

	// Trim leading and trailing hyphens.
	name = strings.Trim(name, "-")

	// If empty after sanitization, use a default.
	if name == "" {
		name = "device"
	}

	return name
}
