package ipinfo

import (
	"errors"
	"net"
	"testing"
)

func stubResolver(asn uint, org string, err error) *Resolver {
	return &Resolver{
		lookup: func(net.IP) (uint, string, error) { return asn, org, err },
	}
}

func TestResolveDatacenterASN(t *testing.T) {
	r := stubResolver(16509, "AMAZON-02", nil)

	info := r.Resolve("3.5.140.2")
	if info == nil {
		t.Fatal("expected a resolved record")
	}
	if !info.IsDatacenter {
		t.Error("AWS ASN should be flagged as datacenter")
	}
	if info.ASN != 16509 || info.Organization != "AMAZON-02" {
		t.Errorf("unexpected record: %+v", info)
	}
}

func TestResolveResidentialASN(t *testing.T) {
	r := stubResolver(7922, "COMCAST-7922", nil)

	info := r.Resolve("73.92.1.10")
	if info == nil {
		t.Fatal("expected a resolved record")
	}
	if info.IsDatacenter {
		t.Error("residential ASN must not be flagged as datacenter")
	}
}

func TestResolveFailures(t *testing.T) {
	t.Run("unparseable address", func(t *testing.T) {
		r := stubResolver(16509, "AMAZON-02", nil)
		if info := r.Resolve("not-an-ip"); info != nil {
			t.Errorf("expected nil, got %+v", info)
		}
	})

	t.Run("lookup error", func(t *testing.T) {
		r := stubResolver(0, "", errors.New("db gone"))
		if info := r.Resolve("8.8.8.8"); info != nil {
			t.Errorf("expected nil, got %+v", info)
		}
	})

	t.Run("unknown ASN", func(t *testing.T) {
		r := stubResolver(0, "", nil)
		if info := r.Resolve("203.0.113.7"); info != nil {
			t.Errorf("expected nil for ASN 0, got %+v", info)
		}
	})
}
