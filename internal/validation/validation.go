package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxFeedbackLength is the longest feedback text accepted for classification.
const MaxFeedbackLength = 10000

// UserNamePattern defines the valid login name format: alphanumeric, dots, hyphens, underscores.
var UserNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateUserName checks if a login name matches the allowed pattern.
func ValidateUserName(name string) bool {
	if name == "" || len(name) > 64 {
		return false
	}
	return UserNamePattern.MatchString(name)
}

// ValidateFeedbackText checks that text is non-blank valid UTF-8 within the length limit.
func ValidateFeedbackText(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "text is required"
	}
	if !utf8.ValidString(text) {
		return false, "text must be valid UTF-8"
	}
	if utf8.RuneCountInString(text) > MaxFeedbackLength {
		return false, "text is too long"
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// IsRemote reports whether location looks like an http(s) URL rather than a file path.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
