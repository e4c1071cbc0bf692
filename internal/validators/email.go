package validators

import (
	"net"
	"strings"
)

// HasValidEmailDomain checks that the address's domain actually resolves,
// via MX records first, falling back to a plain host lookup.
func HasValidEmailDomain(email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}

	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return "", false
	}

	return domain, true
}
