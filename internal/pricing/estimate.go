// Package pricing estimates the monthly cost of a stack from the Hetzner
// Cloud price list.
package pricing

import (
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/fxstack/internal/config"
)

// LineItem is one billable resource.
type LineItem struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	UnitNet      float64 `json:"unit_net"`
	UnitGross    float64 `json:"unit_gross"`
	MonthlyNet   float64 `json:"monthly_net"`
	MonthlyGross float64 `json:"monthly_gross"`
}

// Estimate is the expected monthly cost of a stack.
type Estimate struct {
	Stack      string     `json:"stack"`
	Location   string     `json:"location"`
	ServerType string     `json:"server_type"`
	Currency   string     `json:"currency"`
	Items      []LineItem `json:"items"`
	Total      LineItem   `json:"total"`
}

// Annual returns the gross yearly cost.
func (e *Estimate) Annual() float64 {
	return e.Total.MonthlyGross * 12
}

// Calculate prices the server and its primary IPv4 for cfg. The firewall
// and SSH key are free. A server type without a price in the configured
// location is an error; a missing IPv4 price is skipped.
func Calculate(p hcloud.Pricing, cfg *config.Config) (*Estimate, error) {
	net, gross, currency, ok := lookupServerPrice(p, cfg.ServerType, cfg.Location)
	if !ok {
		return nil, fmt.Errorf("missing pricing for server type %s in %s", cfg.ServerType, cfg.Location)
	}

	est := &Estimate{
		Stack:      cfg.Name,
		Location:   cfg.Location,
		ServerType: cfg.ServerType,
		Currency:   currency,
	}
	est.Items = append(est.Items, item("server:"+cfg.ServerType, net, gross))

	if ipNet, ipGross, ok := lookupPrimaryIPv4Price(p, cfg.Location); ok {
		est.Items = append(est.Items, item("primary-ipv4", ipNet, ipGross))
	}

	est.Total = LineItem{Name: "total"}
	for _, it := range est.Items {
		est.Total.Count += it.Count
		est.Total.MonthlyNet += it.MonthlyNet
		est.Total.MonthlyGross += it.MonthlyGross
	}
	return est, nil
}

func item(name string, net, gross float64) LineItem {
	return LineItem{Name: name, Count: 1, UnitNet: net, UnitGross: gross, MonthlyNet: net, MonthlyGross: gross}
}

func lookupServerPrice(p hcloud.Pricing, serverType, location string) (net, gross float64, currency string, ok bool) {
	for _, st := range p.ServerTypes {
		if st.ServerType == nil || st.ServerType.Name != serverType {
			continue
		}
		for _, lp := range st.Pricings {
			if lp.Location != nil && lp.Location.Name == location {
				return parseFloat(lp.Monthly.Net), parseFloat(lp.Monthly.Gross), lp.Monthly.Currency, true
			}
		}
	}
	return 0, 0, "", false
}

func lookupPrimaryIPv4Price(p hcloud.Pricing, location string) (net, gross float64, ok bool) {
	for _, ip := range p.PrimaryIPs {
		if ip.Type != string(hcloud.PrimaryIPTypeIPv4) {
			continue
		}
		for _, lp := range ip.Pricings {
			if lp.Location == location {
				return parseFloat(lp.Monthly.Net), parseFloat(lp.Monthly.Gross), true
			}
		}
	}
	return 0, 0, false
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
