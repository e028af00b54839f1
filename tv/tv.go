package tv

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"ayna-epg/consts"
	"ayna-epg/logger"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected http status")
	ErrMissingField     = errors.New("channel record is missing a field")
)

// ChannelInfo is the metadata API's view of a channel.
type ChannelInfo struct {
	ID       string
	Name     string
	Category string
	Logo     string
}

// ChannelIndex maps channel id to its metadata.
type ChannelIndex map[string]ChannelInfo

type channelRecord struct {
	ID           *string `json:"id"`
	Name         *string `json:"name"`
	CategoryName *string `json:"categoryName"`
	Logo         *string `json:"logo"`
}

type channelList struct {
	Channels []channelRecord `json:"channels"`
}

type Client struct {
	httpClient  *http.Client
	userAgent   string
	metadataURL string
}

// NewClient builds a provider client. A zero timeout keeps the
// http.Client default of no timeout.
func NewClient(metadataURL, userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = consts.UA
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		metadataURL: metadataURL,
	}
}

func (c *Client) fetchUrl(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, oops.With("status", res.Status).Wrap(ErrUnexpectedStatus)
	}
	return res, nil
}

// FetchChannelInfo loads the channel metadata index. Any failure is logged
// and yields an empty index; it never aborts the run.
func (c *Client) FetchChannelInfo(ctx context.Context) ChannelIndex {
	index, err := c.fetchChannelInfo(ctx)
	if err != nil {
		logger.Log.Warn().Err(err).Str("url", c.metadataURL).Msg("failed to fetch channel info")
		return ChannelIndex{}
	}
	logger.Log.Debug().Int("channels", len(index)).Msg("channel info loaded")
	return index
}

func (c *Client) fetchChannelInfo(ctx context.Context) (ChannelIndex, error) {
	res, err := c.fetchUrl(ctx, c.metadataURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var list channelList
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return nil, oops.With("context", "decoding channel list").Wrap(err)
	}
	for i, rec := range list.Channels {
		if rec.ID == nil || rec.Name == nil || rec.CategoryName == nil || rec.Logo == nil {
			return nil, oops.With("index", i).Wrap(ErrMissingField)
		}
	}
	return lo.SliceToMap(list.Channels, func(rec channelRecord) (string, ChannelInfo) {
		return *rec.ID, ChannelInfo{
			ID:       *rec.ID,
			Name:     *rec.Name,
			Category: *rec.CategoryName,
			Logo:     *rec.Logo,
		}
	}), nil
}
