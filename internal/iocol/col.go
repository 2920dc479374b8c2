// Package iocol resolves animal names against the Catalogue of Life.
//
// Resolution is a two-step exchange: a name-usage search locates the
// usage id, a detail request brings the classification of the matched
// usage. An exact search that finds nothing is retried once as a
// whole-words search before the name counts as unknown.
package iocol

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"golang.org/x/time/rate"
)

const (
	colBase = "https://api.catalogueoflife.org"

	// colDataset is the id of the COL checklist dataset.
	colDataset = "3"
)

type iocol struct {
	cfg     *config.Config
	client  *http.Client
	limiter *rate.Limiter
	enc     gnfmt.Encoder
	baseURL string
}

// New creates a gngenomes.Resolver backed by the Catalogue of Life.
func New(cfg *config.Config) gngenomes.Resolver {
	res := iocol{
		cfg:     cfg,
		client:  &http.Client{},
		enc:     gnfmt.GNjson{},
		baseURL: colBase,
	}
	if cfg.Enrich.DelayMs > 0 {
		every := time.Duration(cfg.Enrich.DelayMs) * time.Millisecond
		res.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
	return &res
}

func (c *iocol) Authority() taxonomy.Authority {
	return taxonomy.COL
}

// Resolve paces once per name; the search, its whole-words retry and
// the detail lookup ride the same slot, mirroring how the archive has
// always treated one name as one polite unit of work.
func (c *iocol) Resolve(
	ctx context.Context, name string,
) (taxonomy.Placement, error) {
	var empty taxonomy.Placement

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return empty, err
		}
	}

	usageID, err := c.searchUsage(ctx, name)
	if err != nil {
		return empty, err
	}
	if usageID == "" {
		slog.Debug("Name not found",
			"authority", taxonomy.COL, "name", name)
		return taxonomy.NotFound(name), nil
	}

	return c.usagePlacement(ctx, name, usageID)
}

// searchUsage finds the name-usage id for a binomial. An empty id with
// a nil error means the name is unknown to COL.
func (c *iocol) searchUsage(
	ctx context.Context, name string,
) (string, error) {
	endpoint := c.baseURL + "/dataset/" + colDataset + "/nameusage/search"

	for _, matchType := range []string{"EXACT", "WHOLE_WORDS"} {
		params := url.Values{}
		params.Set("q", name)
		params.Set("type", matchType)
		params.Set("rank", "species")

		body, err := c.get(ctx, endpoint, params)
		if err != nil {
			return "", RequestError(name, err)
		}

		var res searchResult
		if err := c.enc.Decode(body, &res); err != nil {
			return "", ResponseError(name, err)
		}
		if len(res.Result) > 0 {
			return res.Result[0].usageID(), nil
		}
	}
	return "", nil
}

func (c *iocol) usagePlacement(
	ctx context.Context, name, usageID string,
) (taxonomy.Placement, error) {
	var empty taxonomy.Placement
	endpoint := c.baseURL + "/dataset/" + colDataset + "/nameusage/" +
		url.PathEscape(usageID)

	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return empty, RequestError(name, err)
	}

	var res usageDetail
	if err := c.enc.Decode(body, &res); err != nil {
		return empty, ResponseError(name, err)
	}

	pl := taxonomy.PlacementFromClassification(
		name, res.Name.ScientificName, res.rankedNames(),
	)
	pl.Status = res.Status
	pl.RecordID = usageID
	return pl, nil
}

func (c *iocol) get(
	ctx context.Context, endpoint string, params url.Values,
) ([]byte, error) {
	if c.cfg.Enrich.TimeoutSec > 0 {
		var cancel context.CancelFunc
		timeout := time.Duration(c.cfg.Enrich.TimeoutSec) * time.Second
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reqURL := endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
