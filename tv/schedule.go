package tv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	"ayna-epg/consts"
	"ayna-epg/logger"
)

// Timestamp keeps the text of a unix timestamp. The feed sends both JSON
// numbers and numeric strings. Fractional numbers are truncated to whole
// seconds; strings are kept verbatim.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
		return nil
	}
	if string(b) == "null" {
		*t = ""
		return nil
	}
	*t = Timestamp(normalizeNumber(string(b)))
	return nil
}

func normalizeNumber(lit string) string {
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || f >= math.MaxInt64 || f <= math.MinInt64 {
		return lit
	}
	return strconv.FormatInt(int64(f), 10)
}

// Text is a feed string that remembers whether its key was present.
// A null value counts as present and empty.
type Text struct {
	Value   string
	Present bool
}

func NewText(s string) Text {
	return Text{Value: s, Present: true}
}

func (t *Text) UnmarshalJSON(b []byte) error {
	t.Present = true
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		t.Value = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &t.Value)
	}
	t.Value = string(b)
	return nil
}

// Or returns def when the key was absent.
func (t Text) Or(def string) string {
	if !t.Present {
		return def
	}
	return t.Value
}

// Program is one compact schedule entry.
type Program struct {
	Start       Timestamp `json:"s"`
	End         Timestamp `json:"e"`
	Name        Text      `json:"n"`
	Description Text      `json:"d"`
}

func (p Program) Title() string {
	return p.Name.Or(consts.UNKNOWN_PROGRAM)
}

func (p Program) Desc() string {
	return p.Description.Or(consts.NO_DESCRIPTION)
}

// Bundle is one channel with its programs inside a daily payload.
// A null or missing id falls back to the placeholder id.
type Bundle struct {
	ID       *string   `json:"i"`
	Name     Text      `json:"n"`
	Programs []Program `json:"epg"`
}

func (b Bundle) ChannelID() string {
	if b.ID == nil {
		return consts.UNKNOWN_CHANNEL_ID
	}
	return *b.ID
}

func (b Bundle) ChannelName() string {
	return b.Name.Or(consts.UNKNOWN_CHANNEL_NAME)
}

// DaySchedule is a successfully fetched daily payload.
type DaySchedule struct {
	URL     string
	Bundles []Bundle
}

// ScheduleURLs returns one URL per day of the window starting at now's date.
func ScheduleURLs(template string, now time.Time) []string {
	urls := make([]string, 0, consts.SCHEDULE_DAYS)
	for i := 0; i < consts.SCHEDULE_DAYS; i++ {
		date := now.AddDate(0, 0, i).Format(consts.SCHEDULE_DATE_FORMAT)
		urls = append(urls, fmt.Sprintf(template, date))
	}
	return urls
}

func (c *Client) FetchSchedule(ctx context.Context, url string) ([]Bundle, error) {
	res, err := c.fetchUrl(ctx, url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var bundles []Bundle
	if err := json.NewDecoder(res.Body).Decode(&bundles); err != nil {
		return nil, oops.With("url", url).Wrap(err)
	}
	return bundles, nil
}

// FetchSchedules fetches each URL in order. Failed days are logged and
// left out; they are not retried.
func (c *Client) FetchSchedules(ctx context.Context, urls []string) []DaySchedule {
	days := make([]DaySchedule, 0, len(urls))
	for _, url := range urls {
		bundles, err := c.FetchSchedule(ctx, url)
		if err != nil {
			logger.Log.Warn().Err(err).Str("url", url).Msg("failed to fetch schedule")
			continue
		}
		logger.Log.Debug().Str("url", url).Int("channels", len(bundles)).Msg("schedule fetched")
		days = append(days, DaySchedule{URL: url, Bundles: bundles})
	}
	return days
}
