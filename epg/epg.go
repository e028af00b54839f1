package epg

import (
	"context"
	"encoding/xml"
	"time"

	"github.com/spf13/afero"

	"ayna-epg/config"
	"ayna-epg/logger"
	"ayna-epg/tv"
)

type TV struct {
	XMLName           xml.Name     `xml:"tv"`
	GeneratorInfoName string       `xml:"generator-info-name,attr"`
	GeneratorInfoURL  string       `xml:"generator-info-url,attr"`
	Channels          []*Channel   `xml:"channel"`
	Programmes        []*Programme `xml:"programme"`
}

type Channel struct {
	XMLName     xml.Name `xml:"channel"`
	ID          string   `xml:"id,attr"`
	DisplayName string   `xml:"display-name"`
	Category    *string  `xml:"category,omitempty"`
	Icon        *Icon    `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

// TextLang is element text with a language attribute.
type TextLang struct {
	Text string `xml:",chardata"`
	Lang string `xml:"lang,attr,omitempty"`
}

type Programme struct {
	XMLName xml.Name `xml:"programme"`
	Start   string   `xml:"start,attr"`
	Stop    string   `xml:"stop,attr"`
	Channel string   `xml:"channel,attr"`
	Title   TextLang `xml:"title"`
	Desc    TextLang `xml:"desc"`
}

// GenerateEPG runs one fetch-build-write pass. Fetch failures only shrink
// the guide; the returned error is always an output failure.
func GenerateEPG(ctx context.Context, cfg *config.Config, fs afero.Fs, now time.Time) (Stats, error) {
	client := tv.NewClient(cfg.MetadataURL, cfg.UserAgent, cfg.HTTPTimeout)

	index := client.FetchChannelInfo(ctx)
	urls := tv.ScheduleURLs(cfg.ScheduleURLTemplate, now)
	days := client.FetchSchedules(ctx, urls)

	doc, stats := Build(index, days)
	stats.FailedDays = len(urls) - len(days)

	logger.Log.Info().
		Int("channels", stats.Channels).
		Int("programmes", stats.Programmes).
		Int("dropped", stats.Dropped).
		Int("failed_days", stats.FailedDays).
		Msg("EPG assembled")

	if err := Write(fs, cfg.OutputPath, doc); err != nil {
		return stats, err
	}
	return stats, nil
}
