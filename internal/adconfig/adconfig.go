// Package adconfig holds the static advertising-placement configuration:
// which ad network fills which page position, and the HTML snippet each
// enabled placement renders. No analytical logic lives here.
package adconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type NetworkType string

const (
	NetworkAdSense NetworkType = "adsense"
	NetworkMontag  NetworkType = "montag"
	NetworkCustom  NetworkType = "custom"
)

// Positions lists every supported page slot, in page order.
var Positions = []string{
	"header_top",
	"header_bottom",
	"content_top",
	"content_middle",
	"content_bottom",
	"sidebar_top",
	"sidebar_bottom",
}

// Placement selects the network and creative parameters for one page slot.
type Placement struct {
	Enabled           bool        `json:"enabled"`
	Type              NetworkType `json:"type"`
	AdSenseSlot       string      `json:"adsense_slot,omitempty"`
	AdSenseFormat     string      `json:"adsense_format,omitempty"`
	AdSenseResponsive bool        `json:"adsense_responsive,omitempty"`
	MontagZoneID      string      `json:"montag_zone_id,omitempty"`
	CustomCode        string      `json:"custom_code,omitempty"`
	ContainerClass    string      `json:"container_class,omitempty"`
}

// Config is the full ad setup: per-network credentials plus the placement
// table.
type Config struct {
	AdSenseEnabled   bool   `json:"adsense_enabled"`
	AdSenseClientID  string `json:"adsense_client_id,omitempty"`
	MontagEnabled    bool   `json:"montag_enabled"`
	MontagPropertyID string `json:"montag_property_id,omitempty"`

	Placements map[string]Placement `json:"placements"`
}

// Default returns the shipped configuration: every network and placement
// disabled until credentials are supplied.
func Default() Config {
	placements := make(map[string]Placement, len(Positions))
	for i, pos := range Positions {
		format := "auto"
		class := "ad-container-horizontal"
		if strings.HasPrefix(pos, "sidebar") {
			format = "vertical"
			class = "ad-container-vertical"
		}
		network := NetworkAdSense
		if i%3 == 2 {
			network = NetworkMontag
		}
		placements[pos] = Placement{
			Type:              network,
			AdSenseFormat:     format,
			AdSenseResponsive: true,
			ContainerClass:    class,
		}
	}
	return Config{Placements: placements}
}

// Load builds the configuration from the environment, starting from Default.
func Load() Config {
	cfg := Default()
	cfg.AdSenseEnabled = envBool("ADSENSE_ENABLED", false)
	cfg.AdSenseClientID = os.Getenv("ADSENSE_CLIENT_ID")
	cfg.MontagEnabled = envBool("MONTAG_ENABLED", false)
	cfg.MontagPropertyID = os.Getenv("MONTAG_PROPERTY_ID")
	return cfg
}

// HeadScripts returns the bootstrap script tags for every enabled network.
func (c Config) HeadScripts() string {
	var b strings.Builder
	if c.AdSenseEnabled && c.AdSenseClientID != "" {
		fmt.Fprintf(&b,
			`<script async src="https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=%s" crossorigin="anonymous"></script>`+"\n",
			c.AdSenseClientID)
	}
	if c.MontagEnabled && c.MontagPropertyID != "" {
		fmt.Fprintf(&b,
			`<script>(function(s,u,z,p){s.src=u,s.setAttribute('data-zone',z),p.appendChild(s);})(document.createElement('script'),'https://inklinkor.com/tag.min.js',%s,document.head);</script>`+"\n",
			c.MontagPropertyID)
	}
	return b.String()
}

// RenderSnippet returns the static HTML for a position, or false when the
// placement (or its network) is disabled.
func (c Config) RenderSnippet(position string) (string, bool) {
	p, ok := c.Placements[position]
	if !ok || !p.Enabled {
		return "", false
	}

	var inner string
	switch p.Type {
	case NetworkAdSense:
		if !c.AdSenseEnabled || c.AdSenseClientID == "" || p.AdSenseSlot == "" {
			return "", false
		}
		responsive := ""
		if p.AdSenseResponsive {
			responsive = ` data-full-width-responsive="true"`
		}
		inner = fmt.Sprintf(
			`<ins class="adsbygoogle" style="display:block" data-ad-client="%s" data-ad-slot="%s" data-ad-format="%s"%s></ins>`+
				`<script>(adsbygoogle = window.adsbygoogle || []).push({});</script>`,
			c.AdSenseClientID, p.AdSenseSlot, p.AdSenseFormat, responsive)
	case NetworkMontag:
		if !c.MontagEnabled || p.MontagZoneID == "" {
			return "", false
		}
		inner = fmt.Sprintf(`<div data-zone="%s"></div>`, p.MontagZoneID)
	case NetworkCustom:
		if strings.TrimSpace(p.CustomCode) == "" {
			return "", false
		}
		inner = p.CustomCode
	default:
		return "", false
	}

	return fmt.Sprintf(`<div class="%s">%s</div>`, p.ContainerClass, inner), true
}

// Snippets returns the rendered HTML for every enabled placement, keyed by
// position.
func (c Config) Snippets() map[string]string {
	out := map[string]string{}
	for _, pos := range Positions {
		if html, ok := c.RenderSnippet(pos); ok {
			out[pos] = html
		}
	}
	return out
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}
