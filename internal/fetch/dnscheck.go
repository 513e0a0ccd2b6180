package fetch

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNS classes reported by CheckDNS.
const (
	DNSResolves  = "RESOLVES"
	DNSNxdomain  = "NXDOMAIN"
	DNSNoARecord = "NO_A_RECORD"
	DNSServfail  = "SERVFAIL_or_TIMEOUT"
	DNSInvalid   = "INVALID_NAME"
)

type DNSStatus struct {
	Host          string
	IPs           []net.IP
	Class         string
	ResolverError string
}

var dnsTimeout = 3 * time.Second

// CheckDNS classifies resolution of the upstream API host. Used by preflight
// to tell apart a dead host from a wrong base URL before the service starts.
func CheckDNS(host string) DNSStatus {
	s := DNSStatus{Host: strings.TrimSpace(host)}
	if s.Host == "" || strings.Contains(s.Host, "://") {
		s.Class = DNSInvalid
		return s
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{} // OS resolver

	ips, err := r.LookupIP(ctx, "ip", s.Host)
	if err == nil {
		if len(ips) == 0 {
			s.Class = DNSNoARecord
			return s
		}
		s.IPs = ips
		s.Class = DNSResolves
		return s
	}
	s.ResolverError = err.Error()
	var de *net.DNSError
	if errors.As(err, &de) && de.IsNotFound {
		s.Class = DNSNxdomain
		return s
	}
	s.Class = DNSServfail
	return s
}

// ExtractHost pulls the hostname from a URL string.
func ExtractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
