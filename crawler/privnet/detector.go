// Package privnet answers one question for the crawler's fetch stage:
// does this host resolve to an address the crawler should refuse to
// fetch from. A BFS crawl typically visits many pages per host, so
// NetDetector caches each host's verdict instead of re-resolving and
// re-scanning the CIDR list on every page.
package privnet

import (
	"net"
	"sync"
)

// defaultBlocks lists the RFC1918 private ranges, loopback, link-local
// and other non-routable blocks a public web crawler has no business
// fetching from.
var defaultBlocks = []string{
	"127.0.0.0/8", // IPv4 loopback
	"::1/128",     // IPv6 loopback
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"169.254.0.0/16", // IPv4 link-local
	"fe80::/10",      // IPv6 link-local
	"0.0.0.0/8",
	"255.255.255.255/32",
	"fc00::/7", // IPv6 unique local
}

// NetDetector reports whether a host resolves to an address inside a
// configured set of private CIDR blocks, memoizing the answer per
// host for the lifetime of the detector.
type NetDetector struct {
	blocks []*net.IPNet

	mu    sync.Mutex
	cache map[string]bool
}

// NewDetector returns a NetDetector using defaultBlocks.
func NewDetector() (*NetDetector, error) {
	return NewDetectorFromCIDRs(defaultBlocks...)
}

// NewDetectorFromCIDRs returns a NetDetector restricted to cidrs
// instead of defaultBlocks, for callers that need a narrower or wider
// definition of "private" than RFC1918.
func NewDetectorFromCIDRs(cidrs ...string) (*NetDetector, error) {
	blocks, err := parseCIDRs(cidrs...)
	if err != nil {
		return nil, err
	}

	return &NetDetector{blocks: blocks, cache: make(map[string]bool)}, nil
}

// IsNetworkPrivate resolves host and reports whether the resolved
// address falls inside any of the detector's blocks. The result is
// cached by host so repeated lookups against the same host, common
// while crawling many pages on one site, only resolve and scan once.
func (d *NetDetector) IsNetworkPrivate(host string) (bool, error) {
	d.mu.Lock()
	cached, ok := d.cache[host]
	d.mu.Unlock()

	if ok {
		return cached, nil
	}

	ipAddr, err := net.ResolveIPAddr("ip", host)
	if err != nil {
		return false, err
	}

	private := false
	for _, block := range d.blocks {
		if block.Contains(ipAddr.IP) {
			private = true

			break
		}
	}

	d.mu.Lock()
	d.cache[host] = private
	d.mu.Unlock()

	return private, nil
}

func parseCIDRs(cidrs ...string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, len(cidrs))

	for i, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, err
		}

		nets[i] = ipNet
	}

	return nets, nil
}
