package ipinfo

import (
	"fmt"
	"net"

	geoip2 "github.com/oschwald/geoip2-golang"

	"github.com/trafficlens/visitoriq/internal/analysis"
)

// datacenterASNs maps ASNs of well-known cloud and hosting providers. Traffic
// from these networks does not originate from residential connections; it is
// a risk signal, not proof of abuse.
var datacenterASNs = map[uint]string{
	// Major cloud providers
	16509:  "Amazon.com (AWS)",
	14618:  "Amazon.com (AWS)",
	15169:  "Google Cloud",
	396982: "Google Cloud",
	8075:   "Microsoft Azure",
	14061:  "DigitalOcean",

	// European hosting providers
	24940: "Hetzner Online GmbH",
	16276: "OVH SAS",
	12876: "Scaleway",

	// Other common hosting networks
	20473: "Vultr Holdings",
	63949: "Akamai (Linode)",
	13335: "Cloudflare",
}

// Resolver pre-computes the opaque ip_info input from a MaxMind ASN
// database. It runs in the transport layer, before the pipeline is invoked;
// the pipeline itself never performs lookups.
type Resolver struct {
	lookup func(net.IP) (uint, string, error)
	closer func() error
}

// Open loads the ASN database at the given path.
func Open(asnDBPath string) (*Resolver, error) {
	reader, err := geoip2.Open(asnDBPath)
	if err != nil {
		return nil, fmt.Errorf("ipinfo: open ASN database: %w", err)
	}
	return &Resolver{
		lookup: func(ip net.IP) (uint, string, error) {
			record, err := reader.ASN(ip)
			if err != nil {
				return 0, "", err
			}
			return record.AutonomousSystemNumber, record.AutonomousSystemOrganization, nil
		},
		closer: reader.Close,
	}, nil
}

// Resolve returns the reputation record for an address, or nil when the
// address is unparseable or unknown. Only the datacenter flag can be derived
// from ASN data; VPN/proxy/Tor flags stay unset.
func (r *Resolver) Resolve(addr string) *analysis.IPInfo {
	ip := net.ParseIP(addr)
	if ip == nil {
		return nil
	}
	asn, org, err := r.lookup(ip)
	if err != nil || asn == 0 {
		return nil
	}
	_, isDatacenter := datacenterASNs[asn]
	return &analysis.IPInfo{
		IsDatacenter: isDatacenter,
		ASN:          asn,
		Organization: org,
	}
}

// Close releases the underlying database.
func (r *Resolver) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
