package typecheck

import (
	"net/netip"
	"strings"
)

func toIPAddress(v any, level StrictLevel, _ params) (any, error) {
	switch x := normalize(v).(type) {
	case netip.Addr:
		if x.IsValid() {
			return x, nil
		}
	case string:
		if level >= strict {
			break
		}
		if addr, err := netip.ParseAddr(strings.TrimSpace(x)); err == nil {
			return addr, nil
		}
	}
	return nil, conversionError(v, IPAddress, level)
}
