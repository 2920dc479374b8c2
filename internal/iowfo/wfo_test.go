package iowfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/errcode"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acceptedJSON = `{
  "data": {
    "taxonNameMatch": {
      "name": {
        "fullNameStringPlain": "Cocos nucifera L.",
        "rank": "species"
      },
      "acceptedName": {
        "fullNameStringPlain": "Cocos nucifera L.",
        "id": "wfo-0000214930"
      },
      "acceptedPlacement": {
        "family": {"fullNameStringPlain": "Arecaceae"},
        "subfamily": {"fullNameStringPlain": "Arecoideae"},
        "tribe": {"fullNameStringPlain": "Cocoseae"},
        "subtribe": {"fullNameStringPlain": "Attaleinae"},
        "genus": {"fullNameStringPlain": "Cocos"}
      }
    }
  }
}`

const synonymJSON = `{
  "data": {
    "taxonNameMatch": {
      "name": {
        "fullNameStringPlain": "Elaeis melanococca Gaertn.",
        "rank": "species"
      },
      "acceptedName": {
        "fullNameStringPlain": "Elaeis oleifera (Kunth) Cortés",
        "id": "wfo-0000258023"
      },
      "acceptedPlacement": {
        "family": {"fullNameStringPlain": "Arecaceae"},
        "subfamily": {"fullNameStringPlain": "Arecoideae"},
        "tribe": {"fullNameStringPlain": "Cocoseae"},
        "subtribe": null,
        "genus": {"fullNameStringPlain": "Elaeis"}
      }
    }
  }
}`

const notFoundJSON = `{"data": {"taxonNameMatch": null}}`

const errorsJSON = `{
  "errors": [{"message": "Internal server error"}],
  "data": null
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptEnrichDelayMs(0)})
	return cfg
}

func newResolver(t *testing.T, baseURL string) *iowfo {
	t.Helper()
	res := New(testConfig(t)).(*iowfo)
	res.baseURL = baseURL
	return res
}

func serveJSON(t *testing.T, body string, gotBody *[]byte) *httptest.Server {
	t.Helper()
	handler := func(w http.ResponseWriter, r *http.Request) {
		if gotBody != nil {
			*gotBody, _ = io.ReadAll(r.Body)
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, body)
	}
	return httptest.NewServer(http.HandlerFunc(handler))
}

func TestAuthority(t *testing.T) {
	res := New(testConfig(t))
	assert.Equal(t, taxonomy.WFO, res.Authority())
}

func TestResolve_Accepted(t *testing.T) {
	var body []byte
	srv := serveJSON(t, acceptedJSON, &body)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Cocos nucifera")
	require.NoError(t, err)

	assert.True(t, pl.Found())
	assert.Equal(t, "Cocos nucifera L.", pl.AcceptedName)
	assert.Equal(t, "Arecaceae", pl.Family)
	assert.Equal(t, "Arecoideae", pl.Subfamily)
	assert.Equal(t, "Cocoseae", pl.Tribe)
	assert.Equal(t, "Attaleinae", pl.Subtribe)
	assert.Equal(t, "Cocos", pl.Genus)
	assert.Equal(t, "wfo-0000214930", pl.RecordID)

	// The request carries the query and the name variable.
	var req gqlRequest
	require.NoError(t, json.Unmarshal(body, &req))
	assert.Contains(t, req.Query, "taxonNameMatch")
	assert.Equal(t, "Cocos nucifera", req.Variables.ScientificName)
}

func TestResolve_Synonym(t *testing.T) {
	srv := serveJSON(t, synonymJSON, nil)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Elaeis melanococca")
	require.NoError(t, err)

	assert.Equal(t, "Elaeis oleifera (Kunth) Cortés", pl.AcceptedName)
	assert.Equal(t, "Elaeis", pl.Genus)
	assert.Empty(t, pl.Subtribe, "null rank stays empty")
}

func TestResolve_NotFound(t *testing.T) {
	srv := serveJSON(t, notFoundJSON, nil)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Nonexistus palmus")
	require.NoError(t, err, "an unknown name is not an error")

	assert.False(t, pl.Found())
	assert.Equal(t, "Nonexistus palmus", pl.AcceptedName)
}

func TestResolve_GraphQLErrors(t *testing.T) {
	srv := serveJSON(t, errorsJSON, nil)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	_, err := res.Resolve(context.Background(), "Cocos nucifera")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ResolverResponseError, gnErr.Code)
}

func TestResolve_ServerDown(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}
	srv := httptest.NewServer(http.HandlerFunc(handler))
	defer srv.Close()

	res := newResolver(t, srv.URL)
	_, err := res.Resolve(context.Background(), "Cocos nucifera")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ResolverRequestError, gnErr.Code)
}

func TestResolve_BrokenJSON(t *testing.T) {
	srv := serveJSON(t, `{"data": {`, nil)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	_, err := res.Resolve(context.Background(), "Cocos nucifera")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ResolverResponseError, gnErr.Code)
}
