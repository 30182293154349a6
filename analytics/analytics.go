// Package analytics derives per-link statistics from already-fetched click
// data. Every function here is a pure computation; nothing touches the store.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"shortlink/models"
)

// Device is one of a fixed set of categories derived from user agents.
type Device string

const (
	DeviceIOS     Device = "iOS"
	DeviceAndroid Device = "Android"
	DeviceWindows Device = "Windows"
	DeviceMacOS   Device = "macOS"
	DeviceLinux   Device = "Linux"
	DeviceOther   Device = "Other"
	DeviceUnknown Device = "Unknown"
)

// uaPatterns is evaluated top to bottom and the first match wins. Mobile
// tokens must come before the desktop ones: iOS user agents contain
// "like Mac OS X" and Android ones contain "Linux".
var uaPatterns = []struct {
	tokens []string
	device Device
}{
	{[]string{"iphone", "ipad", "ipod"}, DeviceIOS},
	{[]string{"android"}, DeviceAndroid},
	{[]string{"windows"}, DeviceWindows},
	{[]string{"mac"}, DeviceMacOS},
	{[]string{"linux"}, DeviceLinux},
}

// Classify maps a raw user-agent string to a device category. An absent
// user agent is Unknown; one matching no pattern is Other.
func Classify(userAgent string) Device {
	if userAgent == "" {
		return DeviceUnknown
	}

	ua := strings.ToLower(userAgent)
	for _, p := range uaPatterns {
		for _, token := range p.tokens {
			if strings.Contains(ua, token) {
				return p.device
			}
		}
	}
	return DeviceOther
}

// DeviceShare is one row of a device distribution.
type DeviceShare struct {
	Device  Device  `json:"device"`
	Clicks  int     `json:"clicks"`
	Percent float64 `json:"percent"`
}

// DeviceDistribution groups events by device category and sorts the result
// by descending click count. Percentages are relative to totalClicks, the
// link's authoritative counter, which may exceed len(events) when the event
// log is sampled or truncated.
func DeviceDistribution(events []models.ClickEvent, totalClicks int) []DeviceShare {
	counts := make(map[Device]int)
	var order []Device
	for _, e := range events {
		d := Classify(e.UserAgent)
		if _, seen := counts[d]; !seen {
			order = append(order, d)
		}
		counts[d]++
	}

	shares := make([]DeviceShare, 0, len(order))
	for _, d := range order {
		share := DeviceShare{Device: d, Clicks: counts[d]}
		if totalClicks > 0 {
			share.Percent = float64(counts[d]) / float64(totalClicks) * 100
		}
		shares = append(shares, share)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Clicks > shares[j].Clicks
	})
	return shares
}

// ClicksPerDay is the average clicks per day since the link was created,
// rounded to one decimal place. Links younger than one day count as one
// day old so a fresh link doesn't report an inflated rate.
func ClicksPerDay(clicks int, createdAt, now time.Time) float64 {
	days := int(math.Ceil(now.Sub(createdAt).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return math.Round(float64(clicks)/float64(days)*10) / 10
}

// TotalClicks sums the click counters across links.
func TotalClicks(links []models.ShortLink) int {
	total := 0
	for _, l := range links {
		total += l.ClickCount
	}
	return total
}

// TopLinks returns the n most-clicked links. The sort is stable, so links
// with equal counts keep their input order.
func TopLinks(links []models.ShortLink, n int) []models.ShortLink {
	ranked := make([]models.ShortLink, len(links))
	copy(ranked, links)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ClickCount > ranked[j].ClickCount
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// RankedLink pairs a top link with its share of the owner's total clicks.
type RankedLink struct {
	Link         models.ShortLink `json:"link"`
	SharePercent int              `json:"share_percent"`
}

// RankLinks returns the top n links with each one's rounded percentage of
// the total clicks across all the given links.
func RankLinks(links []models.ShortLink, n int) []RankedLink {
	total := TotalClicks(links)

	top := TopLinks(links, n)
	ranked := make([]RankedLink, 0, len(top))
	for _, l := range top {
		r := RankedLink{Link: l}
		if total > 0 {
			r.SharePercent = int(math.Round(float64(l.ClickCount) / float64(total) * 100))
		}
		ranked = append(ranked, r)
	}
	return ranked
}
