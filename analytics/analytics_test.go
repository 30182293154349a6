package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      Device
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X)", DeviceIOS},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 15_0 like Mac OS X)", DeviceIOS},
		{"android before linux", "Mozilla/5.0 (Linux; Android 13; Pixel 7)", DeviceAndroid},
		{"windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", DeviceWindows},
		{"macos", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", DeviceMacOS},
		{"linux desktop", "Mozilla/5.0 (X11; Linux x86_64)", DeviceLinux},
		{"absent", "", DeviceUnknown},
		{"no match", "curl/7.0", DeviceOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.userAgent))
		})
	}
}

func TestDeviceDistribution(t *testing.T) {
	events := []models.ClickEvent{
		{UserAgent: "Mozilla/5.0 (Windows NT 10.0)"},
		{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X)"},
		{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 16_1 like Mac OS X)"},
		{UserAgent: "Mozilla/5.0 (iPad; CPU OS 15_0 like Mac OS X)"},
		{UserAgent: ""},
	}

	shares := DeviceDistribution(events, 5)
	require.Len(t, shares, 3)

	assert.Equal(t, DeviceIOS, shares[0].Device)
	assert.Equal(t, 3, shares[0].Clicks)
	assert.InDelta(t, 60.0, shares[0].Percent, 0.001)

	assert.Equal(t, 1, shares[1].Clicks)
	assert.Equal(t, 1, shares[2].Clicks)
	// Equal counts keep first-seen order.
	assert.Equal(t, DeviceWindows, shares[1].Device)
	assert.Equal(t, DeviceUnknown, shares[2].Device)
}

func TestDeviceDistributionZeroTotal(t *testing.T) {
	shares := DeviceDistribution([]models.ClickEvent{{UserAgent: "curl/7.0"}}, 0)
	require.Len(t, shares, 1)
	assert.Zero(t, shares[0].Percent)
}

func TestDeviceDistributionEmpty(t *testing.T) {
	assert.Empty(t, DeviceDistribution(nil, 0))
}

func TestClicksPerDay(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// A link created just now still divides by one day.
	assert.Equal(t, 10.0, ClicksPerDay(10, now, now))

	fiveDaysAgo := now.Add(-5 * 24 * time.Hour)
	assert.Equal(t, 5.0, ClicksPerDay(25, fiveDaysAgo, now))

	// Partial days round up.
	thirtySixHoursAgo := now.Add(-36 * time.Hour)
	assert.Equal(t, 5.0, ClicksPerDay(10, thirtySixHoursAgo, now))

	assert.Equal(t, 0.0, ClicksPerDay(0, fiveDaysAgo, now))
}

func TestTopLinksTieOrder(t *testing.T) {
	links := []models.ShortLink{
		{ID: "a", ClickCount: 3},
		{ID: "b", ClickCount: 10},
		{ID: "c", ClickCount: 1},
		{ID: "d", ClickCount: 7},
		{ID: "e", ClickCount: 10},
	}

	top := TopLinks(links, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "e", top[1].ID)
	assert.Equal(t, "d", top[2].ID)

	// Input is left untouched.
	assert.Equal(t, "a", links[0].ID)
}

func TestTopLinksShorterThanN(t *testing.T) {
	links := []models.ShortLink{{ID: "a", ClickCount: 1}}
	assert.Len(t, TopLinks(links, 5), 1)
}

func TestRankLinks(t *testing.T) {
	links := []models.ShortLink{
		{ID: "a", ClickCount: 30},
		{ID: "b", ClickCount: 60},
		{ID: "c", ClickCount: 10},
	}

	ranked := RankLinks(links, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Link.ID)
	assert.Equal(t, 60, ranked[0].SharePercent)
	assert.Equal(t, "a", ranked[1].Link.ID)
	assert.Equal(t, 30, ranked[1].SharePercent)
}

func TestRankLinksZeroClicks(t *testing.T) {
	ranked := RankLinks([]models.ShortLink{{ID: "a"}}, 5)
	require.Len(t, ranked, 1)
	assert.Zero(t, ranked[0].SharePercent)
}
