package s3

import (
	"strings"
)

const awsHost = "s3.amazonaws.com"

// endpoint is the resolved connection target plus the URL scheme used for
// public links.
type endpoint struct {
	host   string
	secure bool
	scheme string
}

// resolveEndpoint strips an optional scheme from cfg.Endpoint. An explicit
// scheme decides TLS; otherwise UseSSL does. Public links default to https.
func resolveEndpoint(cfg Config) endpoint {
	raw := strings.TrimRight(cfg.Endpoint, "/")
	switch {
	case raw == "":
		host := awsHost
		if cfg.Region != "" {
			host = "s3." + cfg.Region + ".amazonaws.com"
		}
		return endpoint{host: host, secure: true, scheme: "https"}
	case strings.HasPrefix(raw, "https://"):
		return endpoint{host: strings.TrimPrefix(raw, "https://"), secure: true, scheme: "https"}
	case strings.HasPrefix(raw, "http://"):
		return endpoint{host: strings.TrimPrefix(raw, "http://"), secure: false, scheme: "http"}
	default:
		return endpoint{host: raw, secure: cfg.UseSSL, scheme: "https"}
	}
}

// publicBase returns the prefix keys are appended to: the configured public
// URL, or a path-style / virtual-hosted-style bucket URL.
func publicBase(cfg Config, ep endpoint) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	if cfg.PathStyle {
		return ep.scheme + "://" + ep.host + "/" + cfg.Bucket
	}
	return ep.scheme + "://" + cfg.Bucket + "." + ep.host
}
