package iocol

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/errcode"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchHitJSON = `{
  "offset": 0,
  "limit": 50,
  "total": 1,
  "result": [{"id": "4QHKG", "usage": {"id": "4QHKG"}}]
}`

const searchNestedIDJSON = `{
  "offset": 0,
  "limit": 50,
  "total": 1,
  "result": [{"usage": {"id": "4QHKG"}}]
}`

const searchEmptyJSON = `{"offset": 0, "limit": 50, "total": 0, "result": []}`

const detailJSON = `{
  "id": "4QHKG",
  "name": {"scientificName": "Sitophilus oryzae"},
  "status": "accepted",
  "classification": [
    {"id": "N", "name": "Animalia", "rank": "kingdom"},
    {"id": "823", "name": "Arthropoda", "rank": "phylum"},
    {"id": "HX", "name": "Insecta", "rank": "class"},
    {"id": "K5", "name": "Coleoptera", "rank": "order"},
    {"id": "9WHL", "name": "Curculionidae", "rank": "family"},
    {"id": "7QTCZ", "name": "Dryophthorinae", "rank": "subfamily"},
    {"id": "89QFH", "name": "Rhynchophorini", "rank": "tribe"},
    {"id": "639RM", "name": "Sitophilus", "rank": "genus"}
  ]
}`

const synonymDetailJSON = `{
  "id": "77TSL",
  "name": {"scientificName": "Calandra oryzae"},
  "status": "synonym",
  "classification": [
    {"id": "9WHL", "name": "Curculionidae", "rank": "family"},
    {"id": "639RM", "name": "Sitophilus", "rank": "genus"}
  ]
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptEnrichDelayMs(0)})
	return cfg
}

func newResolver(t *testing.T, baseURL string) *iocol {
	t.Helper()
	res := New(testConfig(t)).(*iocol)
	res.baseURL = baseURL
	return res
}

func TestAuthority(t *testing.T) {
	res := New(testConfig(t))
	assert.Equal(t, taxonomy.COL, res.Authority())
}

func TestResolve_Accepted(t *testing.T) {
	var searches []url.Values
	var detailCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/dataset/3/nameusage/search",
		func(w http.ResponseWriter, r *http.Request) {
			searches = append(searches, r.URL.Query())
			fmt.Fprint(w, searchHitJSON)
		})
	mux.HandleFunc("/dataset/3/nameusage/4QHKG",
		func(w http.ResponseWriter, r *http.Request) {
			detailCalls++
			fmt.Fprint(w, detailJSON)
		})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Sitophilus oryzae")
	require.NoError(t, err)

	assert.True(t, pl.Found())
	assert.Equal(t, "Sitophilus oryzae", pl.AcceptedName)
	assert.Equal(t, "Curculionidae", pl.Family)
	assert.Equal(t, "Dryophthorinae", pl.Subfamily)
	assert.Equal(t, "Rhynchophorini", pl.Tribe)
	assert.Empty(t, pl.Subtribe)
	assert.Equal(t, "Sitophilus", pl.Genus)
	assert.Equal(t, "accepted", pl.Status)
	assert.Equal(t, "4QHKG", pl.RecordID)

	require.Len(t, searches, 1, "an exact hit needs no retry")
	assert.Equal(t, "Sitophilus oryzae", searches[0].Get("q"))
	assert.Equal(t, "EXACT", searches[0].Get("type"))
	assert.Equal(t, "species", searches[0].Get("rank"))
	assert.Equal(t, 1, detailCalls)
}

func TestResolve_WholeWordsRetry(t *testing.T) {
	var types []string

	mux := http.NewServeMux()
	mux.HandleFunc("/dataset/3/nameusage/search",
		func(w http.ResponseWriter, r *http.Request) {
			matchType := r.URL.Query().Get("type")
			types = append(types, matchType)
			if matchType == "EXACT" {
				fmt.Fprint(w, searchEmptyJSON)
				return
			}
			fmt.Fprint(w, searchHitJSON)
		})
	mux.HandleFunc("/dataset/3/nameusage/4QHKG",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, detailJSON)
		})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Sitophilus oryzae")
	require.NoError(t, err)

	assert.True(t, pl.Found())
	assert.Equal(t, []string{"EXACT", "WHOLE_WORDS"}, types)
}

func TestResolve_NotFound(t *testing.T) {
	var searchCalls, detailCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/dataset/3/nameusage/search",
		func(w http.ResponseWriter, r *http.Request) {
			searchCalls++
			fmt.Fprint(w, searchEmptyJSON)
		})
	mux.HandleFunc("/dataset/3/nameusage/",
		func(w http.ResponseWriter, r *http.Request) {
			detailCalls++
			http.NotFound(w, r)
		})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Nonexistus weevilus")
	require.NoError(t, err, "an unknown name is not an error")

	assert.False(t, pl.Found())
	assert.Equal(t, "Nonexistus weevilus", pl.AcceptedName)
	assert.Equal(t, 2, searchCalls, "exact and whole-words attempts")
	assert.Zero(t, detailCalls)
}

func TestResolve_NestedUsageID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dataset/3/nameusage/search",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, searchNestedIDJSON)
		})
	mux.HandleFunc("/dataset/3/nameusage/4QHKG",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, detailJSON)
		})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Sitophilus oryzae")
	require.NoError(t, err)
	assert.Equal(t, "4QHKG", pl.RecordID)
}

func TestResolve_SynonymStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dataset/3/nameusage/search",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"total": 1, "result": [{"id": "77TSL"}]}`)
		})
	mux.HandleFunc("/dataset/3/nameusage/77TSL",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, synonymDetailJSON)
		})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	pl, err := res.Resolve(context.Background(), "Calandra oryzae")
	require.NoError(t, err)

	assert.Equal(t, "synonym", pl.Status)
	assert.Equal(t, "Calandra oryzae", pl.AcceptedName)
	assert.Equal(t, "Sitophilus", pl.Genus)
}

func TestResolve_SearchFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dataset/3/nameusage/search",
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	_, err := res.Resolve(context.Background(), "Sitophilus oryzae")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ResolverRequestError, gnErr.Code)
}

func TestResolve_BrokenDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dataset/3/nameusage/search",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, searchHitJSON)
		})
	mux.HandleFunc("/dataset/3/nameusage/4QHKG",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"name": {`)
		})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newResolver(t, srv.URL)
	_, err := res.Resolve(context.Background(), "Sitophilus oryzae")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ResolverResponseError, gnErr.Code)
}
