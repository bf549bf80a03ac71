package validator

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

// singleton go-playground instance used for syntax checks
var (
	validate     *playground.Validate
	validateOnce sync.Once
)

func formatChecker() *playground.Validate {
	validateOnce.Do(func() {
		validate = playground.New(playground.WithRequiredStructEnabled())
	})
	return validate
}

// hasFormat reports whether s satisfies the go-playground tag.
func hasFormat(s, tag string) bool {
	return formatChecker().Var(s, tag) == nil
}

// EmailAddress validates an email address.
type EmailAddress struct{}

func NewEmailAddress() *EmailAddress {
	return &EmailAddress{}
}

// Validate implements Validator.
func (v *EmailAddress) Validate(value any) Result {
	s, ok := stringOf(value)
	if !ok || strings.TrimSpace(s) == "" || !hasFormat(s, "email") {
		return fail("validation.email", "Invalid Email address given.", nil)
	}
	return pass()
}

// URLConfig configures URL.
type URLConfig struct {
	// PathRequired requires a path after the host, e.g. https://example.com/ab1/.
	PathRequired bool `mapstructure:"pathRequired"`
	// QueryRequired requires a query string, e.g. ?name=Foo&age=37.
	QueryRequired bool `mapstructure:"queryRequired"`
}

// URL validates an absolute URL. Checks run in order and the first failure
// is the only one reported.
type URL struct {
	cfg URLConfig
}

func NewURL(cfg URLConfig) *URL {
	return &URL{cfg: cfg}
}

// Validate implements Validator.
func (v *URL) Validate(value any) Result {
	s, ok := stringOf(value)
	if !ok || strings.TrimSpace(s) == "" || !hasFormat(s, "url") {
		return fail("validation.url", "'%{value}' is not a valid url", map[string]any{"value": value})
	}

	u, err := url.Parse(s)
	if err != nil {
		return fail("validation.url", "'%{value}' is not a valid url", map[string]any{"value": value})
	}

	if v.cfg.PathRequired && u.Path == "" {
		return fail("validation.url_path", "Url must contain a path after the domain name", map[string]any{"value": s})
	}

	if v.cfg.QueryRequired && u.RawQuery == "" {
		return fail("validation.url_query", "Url must contain a query string", map[string]any{"value": s})
	}

	return pass()
}

// IPAddressConfig configures IPAddress. IPv4Only and IPv6Only are exclusive.
type IPAddressConfig struct {
	IPv4Only           bool `mapstructure:"ipv4"`
	IPv6Only           bool `mapstructure:"ipv6"`
	NotInPrivateRange  bool `mapstructure:"notInPrivateRange"`
	NotInReservedRange bool `mapstructure:"notInReservedRange"`
}

// reservedRanges are loopback, link-local, unspecified and future-use blocks.
var reservedRanges = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("240.0.0.0/4"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("::/128"),
	netip.MustParsePrefix("::ffff:0:0/96"),
	netip.MustParsePrefix("fe80::/10"),
}

// IPAddress validates an IPv4 or IPv6 address. Checks run in a fixed order
// (syntax, version, private range, reserved range) and only the first
// failure is reported.
type IPAddress struct {
	cfg IPAddressConfig
}

func NewIPAddress(cfg IPAddressConfig) (*IPAddress, error) {
	if cfg.IPv4Only && cfg.IPv6Only {
		return nil, fmt.Errorf("%w: 'ipv4' and 'ipv6' are mutually exclusive", ErrInvalidConfig)
	}
	return &IPAddress{cfg: cfg}, nil
}

// Validate implements Validator.
func (v *IPAddress) Validate(value any) Result {
	s, ok := stringOf(value)
	if !ok || !hasFormat(s, "ip") {
		return fail("validation.ip", "%{value} is not a valid IP address", map[string]any{"value": value})
	}

	if v.cfg.IPv4Only && !hasFormat(s, "ipv4") {
		return fail("validation.ipv4", "%{value} is not a valid IPv4 address", map[string]any{"value": s})
	}

	if v.cfg.IPv6Only && !hasFormat(s, "ipv6") {
		return fail("validation.ipv6", "%{value} is not a valid IPv6 address", map[string]any{"value": s})
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return fail("validation.ip", "%{value} is not a valid IP address", map[string]any{"value": s})
	}

	if v.cfg.NotInPrivateRange && addr.IsPrivate() {
		return fail("validation.ip_private", "Ip address must not be within a private range", map[string]any{"value": s})
	}

	if v.cfg.NotInReservedRange && inReservedRange(addr) {
		return fail("validation.ip_reserved", "Ip address must not be within a reserved range", map[string]any{"value": s})
	}

	return pass()
}

func inReservedRange(addr netip.Addr) bool {
	for _, p := range reservedRanges {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
