// Package iowfo resolves plant names against the World Flora Online
// Plant List. One taxonNameMatch GraphQL query returns the matched
// name, its accepted name and the placement of the accepted taxon in a
// single round trip.
package iowfo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"golang.org/x/time/rate"
)

const wfoURL = "https://list.worldfloraonline.org/gql.php"

const matchQuery = `query($scientificName: String!) {
    taxonNameMatch(scientificName: $scientificName) {
        name {
            fullNameStringPlain
            rank
        }
        acceptedName {
            fullNameStringPlain
            id
        }
        acceptedPlacement {
            family { fullNameStringPlain }
            subfamily { fullNameStringPlain }
            tribe { fullNameStringPlain }
            subtribe { fullNameStringPlain }
            genus { fullNameStringPlain }
        }
    }
}`

type iowfo struct {
	cfg     *config.Config
	client  *http.Client
	limiter *rate.Limiter
	enc     gnfmt.Encoder
	baseURL string
}

// New creates a gngenomes.Resolver backed by the WFO Plant List.
func New(cfg *config.Config) gngenomes.Resolver {
	res := iowfo{
		cfg:     cfg,
		client:  &http.Client{},
		enc:     gnfmt.GNjson{},
		baseURL: wfoURL,
	}
	if cfg.Enrich.DelayMs > 0 {
		every := time.Duration(cfg.Enrich.DelayMs) * time.Millisecond
		res.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
	return &res
}

func (w *iowfo) Authority() taxonomy.Authority {
	return taxonomy.WFO
}

func (w *iowfo) Resolve(
	ctx context.Context, name string,
) (taxonomy.Placement, error) {
	var empty taxonomy.Placement

	if w.cfg.Enrich.TimeoutSec > 0 {
		var cancel context.CancelFunc
		timeout := time.Duration(w.cfg.Enrich.TimeoutSec) * time.Second
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return empty, err
		}
	}

	body, err := w.query(ctx, name)
	if err != nil {
		return empty, RequestError(name, err)
	}

	var res gqlResponse
	if err := w.enc.Decode(body, &res); err != nil {
		return empty, ResponseError(name, err)
	}
	if len(res.Errors) > 0 {
		err := fmt.Errorf("graphql: %s", res.Errors[0].Message)
		return empty, ResponseError(name, err)
	}
	if res.Data == nil || res.Data.TaxonNameMatch == nil {
		slog.Debug("Name not found",
			"authority", taxonomy.WFO, "name", name)
		return taxonomy.NotFound(name), nil
	}

	return res.Data.TaxonNameMatch.placement(name), nil
}

func (w *iowfo) query(ctx context.Context, name string) ([]byte, error) {
	payload, err := w.enc.Encode(gqlRequest{
		Query:     matchQuery,
		Variables: gqlVariables{ScientificName: name},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, w.baseURL, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

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
