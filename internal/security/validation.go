package security

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// ValidateTargetURL checks that raw is an absolute http(s) URL. Unless
// allowRemote is set the host must be local: localhost, a loopback address or
// a private/link-local address. This keeps the checker pointed at a dev server
// rather than at arbitrary sites.
func ValidateTargetURL(raw string, allowRemote bool) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("target URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("target URL must use http or https, got %q", u.Scheme)
	}

	host := u.Hostname()
	if _, err := SanitizeHostname(host); err != nil {
		return nil, fmt.Errorf("invalid target host: %w", err)
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid target port %q", p)
		}
		if err := ValidatePort(n); err != nil {
			return nil, err
		}
	}

	if allowRemote || isLocalHost(host) {
		return u, nil
	}
	return nil, fmt.Errorf("target host %s is not local (use --allow-remote to override)", host)
}

func isLocalHost(host string) bool {
	if strings.EqualFold(host, "localhost") || strings.HasSuffix(strings.ToLower(host), ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || isPrivateIP(ip)
}

// isPrivateIP checks if an IP address is within private/local ranges
func isPrivateIP(ip net.IP) bool {
	privateRanges := []string{
		"10.0.0.0/8",     // RFC 1918
		"172.16.0.0/12",  // RFC 1918
		"192.168.0.0/16", // RFC 1918
		"fc00::/7",       // RFC 4193 ULA
		"fe80::/10",      // RFC 4291 link-local
		"169.254.0.0/16", // RFC 3927 link-local
	}

	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		if network.Contains(ip) {
			return true
		}
	}

	return false
}


// ValidatePort validates that a port number is within valid range
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", port)
	}
	return nil
}

// SanitizeHostname rejects hostnames with characters outside [A-Za-z0-9.-_:].
// The colon admits bare IPv6 literals.
func SanitizeHostname(hostname string) (string, error) {
	if hostname == "" {
		return "", fmt.Errorf("hostname cannot be empty")
	}

	for _, char := range hostname {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '-' || char == '_' || char == ':') {
			return "", fmt.Errorf("invalid character in hostname: %c", char)
		}
	}

	if len(hostname) > 253 {
		return "", fmt.Errorf("hostname too long: %d characters (max 253)", len(hostname))
	}

	return hostname, nil
}

// ValidateScreenshotPath checks the artifact path shape. It does not touch the
// filesystem; a missing directory surfaces when the screenshot is written.
func ValidateScreenshotPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("screenshot path cannot be empty")
	}
	if strings.ToLower(filepath.Ext(path)) != ".png" {
		return fmt.Errorf("screenshot path must end in .png: %s", path)
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("screenshot path is a directory: %s", path)
	}
	return nil
}
