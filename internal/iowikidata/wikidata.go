// Package iowikidata resolves names through the Wikidata action API.
//
// Wikidata has no classification endpoint. A name search yields taxon
// items, and each item points at its rank (P105) and parent taxon
// (P171); the placement comes from walking the parent chain with
// lineage.Walker. The walk makes one entity lookup per step plus one
// per rank, so lookups get their own, tighter pace.
package iowikidata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gnames/gnfmt"
	app "github.com/gnames/gngenomes/pkg"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/lineage"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"golang.org/x/time/rate"
)

const wikidataURL = "https://www.wikidata.org/w/api.php"

type iowikidata struct {
	cfg           *config.Config
	client        *http.Client
	searchLimiter *rate.Limiter
	lookupLimiter *rate.Limiter
	enc           gnfmt.Encoder
	walker        *lineage.Walker
	userAgent     string
	baseURL       string
}

// New creates a gngenomes.Resolver backed by Wikidata. searchHints
// bias candidate selection towards taxon items when a name also
// matches films, ships or towns; without hints the default taxon
// keywords apply.
func New(cfg *config.Config, searchHints []string) gngenomes.Resolver {
	res := iowikidata{
		cfg:       cfg,
		client:    &http.Client{},
		enc:       gnfmt.GNjson{},
		userAgent: userAgent(cfg.Fetch.Email),
		baseURL:   wikidataURL,
	}
	if cfg.Enrich.DelayMs > 0 {
		every := time.Duration(cfg.Enrich.DelayMs) * time.Millisecond
		res.searchLimiter = rate.NewLimiter(rate.Every(every), 1)
	}
	if cfg.Enrich.LookupDelayMs > 0 {
		every := time.Duration(cfg.Enrich.LookupDelayMs) * time.Millisecond
		res.lookupLimiter = rate.NewLimiter(rate.Every(every), 1)
	}
	res.walker = &lineage.Walker{
		Search:   res.search,
		Lookup:   res.lookup,
		Selector: lineage.NewKeywordSelector(searchHints),
		MaxDepth: cfg.Enrich.MaxDepth,
	}
	return &res
}

// userAgent builds the identification string the Wikimedia API policy
// asks bots to send.
func userAgent(email string) string {
	res := fmt.Sprintf("%s/%s", config.AppName, app.Version)
	if email != "" {
		res = fmt.Sprintf("%s (%s)", res, email)
	}
	return res
}

func (w *iowikidata) Authority() taxonomy.Authority {
	return taxonomy.Wikidata
}

func (w *iowikidata) Resolve(
	ctx context.Context, name string,
) (taxonomy.Placement, error) {
	pl, err := w.walker.Resolve(ctx, name)
	if err != nil {
		return taxonomy.Placement{}, err
	}
	if !pl.Found() {
		slog.Debug("Name not found",
			"authority", taxonomy.Wikidata, "name", name)
	}
	return pl, nil
}

// search implements lineage.SearchFunc over wbsearchentities.
func (w *iowikidata) search(
	ctx context.Context, name string,
) ([]lineage.Candidate, error) {
	if w.searchLimiter != nil {
		if err := w.searchLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("format", "json")
	params.Set("language", "en")
	params.Set("type", "item")
	params.Set("search", name)

	body, err := w.get(ctx, params)
	if err != nil {
		return nil, RequestError(name, err)
	}

	var res searchResponse
	if err := w.enc.Decode(body, &res); err != nil {
		return nil, ResponseError(name, err)
	}
	if res.Error != nil {
		return nil, ResponseError(name, res.Error)
	}

	cands := make([]lineage.Candidate, len(res.Search))
	for i, hit := range res.Search {
		cands[i] = lineage.Candidate{
			ID:          hit.ID,
			Label:       hit.Label,
			Description: hit.Description,
		}
	}
	return cands, nil
}

// lookup implements lineage.LookupFunc over wbgetentities. A missing
// entity comes back empty, which ends the walk without failing it.
func (w *iowikidata) lookup(
	ctx context.Context, id string,
) (lineage.Entity, error) {
	var empty lineage.Entity

	if w.lookupLimiter != nil {
		if err := w.lookupLimiter.Wait(ctx); err != nil {
			return empty, err
		}
	}

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("format", "json")
	params.Set("ids", id)
	params.Set("props", "labels|claims")

	body, err := w.get(ctx, params)
	if err != nil {
		return empty, RequestError(id, err)
	}

	var res entitiesResponse
	if err := w.enc.Decode(body, &res); err != nil {
		return empty, ResponseError(id, err)
	}
	if res.Error != nil {
		return empty, ResponseError(id, res.Error)
	}

	ent, ok := res.Entities[id]
	if !ok {
		return empty, nil
	}
	return lineage.Entity{
		Label:    ent.label(),
		RankID:   ent.rankID(),
		ParentID: ent.parentID(),
	}, nil
}

func (w *iowikidata) get(
	ctx context.Context, params url.Values,
) ([]byte, error) {
	if w.cfg.Enrich.TimeoutSec > 0 {
		var cancel context.CancelFunc
		timeout := time.Duration(w.cfg.Enrich.TimeoutSec) * time.Second
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reqURL := w.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
