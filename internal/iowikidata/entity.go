package iowikidata

import "fmt"

// apiError is the error object MediaWiki returns with a 200 status.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Info)
}

type searchResponse struct {
	Search []searchHit `json:"search"`
	Error  *apiError   `json:"error"`
}

type searchHit struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type entitiesResponse struct {
	Entities map[string]entity `json:"entities"`
	Error    *apiError         `json:"error"`
}

// entity decodes only the claims the walk needs. Taxon items carry
// dozens of properties with value shapes of their own (P225 holds a
// bare string), so decoding the full claims map would not survive
// them.
type entity struct {
	Labels map[string]labelValue `json:"labels"`
	Claims entityClaims          `json:"claims"`
}

type labelValue struct {
	Value string `json:"value"`
}

type entityClaims struct {
	Rank   []claim `json:"P105"`
	Parent []claim `json:"P171"`
}

type claim struct {
	MainSnak snak `json:"mainsnak"`
}

// snak is one property statement. DataValue is absent for "no value"
// and "unknown value" statements.
type snak struct {
	DataValue *dataValue `json:"datavalue"`
}

type dataValue struct {
	Value entityValue `json:"value"`
}

type entityValue struct {
	ID string `json:"id"`
}

func (e entity) label() string {
	return e.Labels["en"].Value
}

func (e entity) rankID() string {
	return firstClaimID(e.Claims.Rank)
}

func (e entity) parentID() string {
	return firstClaimID(e.Claims.Parent)
}

func firstClaimID(cs []claim) string {
	if len(cs) == 0 {
		return ""
	}
	dv := cs[0].MainSnak.DataValue
	if dv == nil {
		return ""
	}
	return dv.Value.ID
}
