// Package ioncbi fetches genome assembly metadata from the NCBI
// E-utilities. Searches and summary downloads run strictly sequentially
// and rate-limited; only local name parsing fans out to workers.
package ioncbi

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/assembly"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/parserpool"
	"golang.org/x/time/rate"
)

const (
	eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// NCBI answers searches fast; summary batches can be slow.
	searchTimeout  = 30 * time.Second
	summaryTimeout = 60 * time.Second
)

type ioncbi struct {
	cfg     *config.Config
	client  *http.Client
	limiter *rate.Limiter
	pool    parserpool.Pool
	baseURL string
}

// New creates a gngenomes.Fetcher backed by the NCBI E-utilities.
// The parser pool derives species binomials for records that come
// without one.
func New(cfg *config.Config, pool parserpool.Pool) gngenomes.Fetcher {
	res := ioncbi{
		cfg:     cfg,
		client:  &http.Client{},
		pool:    pool,
		baseURL: eutilsBase,
	}
	if cfg.Fetch.DelayMs > 0 {
		every := time.Duration(cfg.Fetch.DelayMs) * time.Millisecond
		res.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
	return &res
}

func (n *ioncbi) Fetch(
	ctx context.Context, grp groups.GroupConfig,
) ([]assembly.Record, error) {
	if n.cfg.Fetch.Email == "" {
		gn.Warn(
			"No contact email is configured. NCBI asks scripted " +
				"clients to identify themselves; set <em>fetch.email</em> " +
				"in config.yaml or <em>GNGENOMES_FETCH_EMAIL</em>.",
		)
	}

	slog.Info("Searching NCBI assemblies", "group", grp.Name)
	ids, err := n.search(ctx, grp.Name)
	if err != nil {
		return nil, SearchError(grp.Name, err)
	}
	if len(ids) == 0 {
		slog.Warn("No assemblies found", "group", grp.Name)
		return nil, nil
	}
	slog.Info("Found assemblies",
		"group", grp.Name,
		"count", humanize.Comma(int64(len(ids))),
	)

	recs, err := n.fetchSummaries(ctx, ids)
	if err != nil {
		return nil, SummaryError(grp.Name, err)
	}

	if err := n.deriveBinomials(ctx, grp, recs); err != nil {
		return nil, err
	}

	logFetchSummary(grp, recs)
	return recs, nil
}

// search returns the assembly ids of the latest assemblies for a taxon.
func (n *ioncbi) search(ctx context.Context, taxon string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	if err := n.wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("db", "assembly")
	params.Set("term", fmt.Sprintf("%s[Organism] AND latest[filter]", taxon))
	params.Set("retmax", strconv.Itoa(n.cfg.Fetch.RetMax))
	n.identify(params)

	body, err := n.get(ctx, n.baseURL+"/esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var res searchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return res.IDs, nil
}

// fetchSummaries downloads document summaries in batches. A failed batch
// is skipped with a warning; the whole download fails only when nothing
// at all could be fetched.
func (n *ioncbi) fetchSummaries(
	ctx context.Context, ids []string,
) ([]assembly.Record, error) {
	recs := make([]assembly.Record, 0, len(ids))

	bar := pb.Full.Start(len(ids))
	bar.Set("prefix", "Fetching summaries: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	batchSize := n.cfg.Fetch.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	var lastErr error
	for i := 0; i < len(ids); i += batchSize {
		end := slices.Min([]int{i + batchSize, len(ids)})
		batch := ids[i:end]

		docs, err := n.summaryBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			slog.Warn("Skipping failed summary batch",
				"from", i+1, "to", end, "error", err)
			bar.Add(len(batch))
			continue
		}

		for _, doc := range docs {
			recs = append(recs, recordFromSummary(doc))
		}
		bar.Add(len(batch))
	}

	if len(recs) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return recs, nil
}

func (n *ioncbi) summaryBatch(
	ctx context.Context, ids []string,
) ([]docSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	if err := n.wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("db", "assembly")
	params.Set("id", strings.Join(ids, ","))
	n.identify(params)

	body, err := n.get(ctx, n.baseURL+"/esummary.fcgi", params)
	if err != nil {
		return nil, err
	}

	var res summaryResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parse summary response: %w", err)
	}
	return res.Summaries, nil
}

// identify attaches the request parameters NCBI expects from scripted
// clients.
func (n *ioncbi) identify(params url.Values) {
	params.Set("tool", config.AppName)
	if n.cfg.Fetch.Email != "" {
		params.Set("email", n.cfg.Fetch.Email)
	}
	if n.cfg.Fetch.APIKey != "" {
		params.Set("api_key", n.cfg.Fetch.APIKey)
	}
}

func (n *ioncbi) get(
	ctx context.Context, endpoint string, params url.Values,
) ([]byte, error) {
	reqURL := endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// wait blocks until the rate limiter allows the next request.
func (n *ioncbi) wait(ctx context.Context) error {
	if n.limiter == nil {
		return nil
	}
	return n.limiter.Wait(ctx)
}
