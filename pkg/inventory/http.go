package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// listParams are the query parameters for a REST list endpoint. limit=0
// asks the API for the full, unpaginated object list.
type listParams struct {
	Limit int `url:"limit"`
}

// HTTPSource fetches one entity type from a Nautobot-style REST inventory:
// GET {base}/api/{path}/ with token auth, records under a results array.
type HTTPSource struct {
	baseURL string
	token   string
	path    string
	timeout time.Duration
}

// NewHTTPSource creates a source for one entity type. path is the API path
// for the type, e.g. "dcim/devices".
func NewHTTPSource(baseURL, token, path string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		path:    strings.Trim(path, "/"),
		timeout: 30 * time.Second,
	}
}

// FetchAll retrieves every record of the entity type.
func (s *HTTPSource) FetchAll(ctx context.Context) (ObjectSet, error) {
	params, err := query.Values(listParams{Limit: 0})
	if err != nil {
		return ObjectSet{}, fmt.Errorf("failed to build list params: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var body string
	err = requests.
		URL(s.baseURL).
		Pathf("/api/%s/", s.path).
		Params(params).
		Header("Authorization", "Token "+s.token).
		Header("Accept", "application/json").
		ToString(&body).
		Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("Inventory list request failed")
		return ObjectSet{}, fmt.Errorf("failed to fetch %s from inventory: %w", s.path, err)
	}

	results := gjson.Get(body, "results")
	if !results.IsArray() {
		return ObjectSet{}, fmt.Errorf("inventory response for %s has no results array", s.path)
	}

	var records []Record
	results.ForEach(func(_, obj gjson.Result) bool {
		records = append(records, recordFromJSON(obj))
		return true
	})

	log.Debug().Str("path", s.path).Int("count", len(records)).Msg("Fetched inventory objects")
	return NewObjectSet(records), nil
}

// recordFromJSON flattens one API object into a record. Scalar fields map
// directly; nested objects contribute their display/name/slug under the
// field's own key, the way panel filters reference them.
func recordFromJSON(obj gjson.Result) Record {
	record := Record{
		Name:  obj.Get("name").String(),
		Attrs: make(map[string]string),
	}

	obj.ForEach(func(key, value gjson.Result) bool {
		field := key.String()
		switch {
		case value.IsObject():
			for _, candidate := range []string{"slug", "name", "display", "id"} {
				if nested := value.Get(candidate); nested.Exists() {
					record.Attrs[field] = nested.String()
					break
				}
			}
		case value.IsArray():
			// Collections are not filterable attributes.
		default:
			record.Attrs[field] = value.String()
		}
		return true
	})
	return record
}
