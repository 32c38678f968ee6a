package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RESTStore talks to a PostgREST endpoint, which is what Supabase exposes
// under /rest/v1.
type RESTStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     logrus.FieldLogger
}

func NewRESTStore(baseURL, apiKey string, client *http.Client, log logrus.FieldLogger) *RESTStore {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/") + "/rest/v1/",
		apiKey:  apiKey,
		client:  client,
		log:     log,
	}
}

// restError is the body PostgREST sends with a non-2xx status.
type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (s *RESTStore) Select(ctx context.Context, collection string, q Query) ([]Row, error) {
	if err := validate(collection, queryFields(q)...); err != nil {
		return nil, err
	}

	params := filterParams(q.Filters)
	params.Set("select", "*")
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			parts = append(parts, o.Field+"."+dir)
		}
		params.Set("order", strings.Join(parts, ","))
	}

	body, err := s.do(ctx, "select", http.MethodGet, collection, params, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRows("select", body)
}

func (s *RESTStore) Insert(ctx context.Context, collection string, row Row) (Row, error) {
	if len(row) == 0 {
		return nil, ErrEmptyRow
	}
	if err := validate(collection, rowFields(row)...); err != nil {
		return nil, err
	}

	headers := map[string]string{"Prefer": "return=representation"}
	body, err := s.do(ctx, "insert", http.MethodPost, collection, nil, row, headers)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows("insert", body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return Row{}, nil
	}
	return rows[0], nil
}

func (s *RESTStore) Update(ctx context.Context, collection string, patch Row, filters []Filter) error {
	if len(filters) == 0 {
		return ErrNoFilters
	}
	if len(patch) == 0 {
		return ErrEmptyRow
	}
	if err := validate(collection, append(rowFields(patch), filterFields(filters)...)...); err != nil {
		return err
	}

	_, err := s.do(ctx, "update", http.MethodPatch, collection, filterParams(filters), patch, nil)
	return err
}

func (s *RESTStore) Delete(ctx context.Context, collection string, filters []Filter) error {
	if len(filters) == 0 {
		return ErrNoFilters
	}
	if err := validate(collection, filterFields(filters)...); err != nil {
		return err
	}

	_, err := s.do(ctx, "delete", http.MethodDelete, collection, filterParams(filters), nil, nil)
	return err
}

func (s *RESTStore) do(ctx context.Context, op, method, collection string, params url.Values, payload any, headers map[string]string) ([]byte, error) {
	endpoint := s.baseURL + collection
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	s.log.WithFields(logrus.Fields{
		"op":         op,
		"method":     method,
		"collection": collection,
	}).Debug("store request")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := &RemoteError{Op: op, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var re restError
		if json.Unmarshal(body, &re) == nil && re.Message != "" {
			remote.Code = re.Code
			remote.Message = re.Message
		}
		s.log.WithError(remote).WithField("collection", collection).Warn("store request rejected")
		return nil, remote
	}

	return body, nil
}

func decodeRows(op string, body []byte) ([]Row, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []Row{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return nil, &RemoteError{Op: op, Status: http.StatusOK, Message: "malformed payload: " + err.Error()}
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

func filterParams(filters []Filter) url.Values {
	params := url.Values{}
	for _, f := range filters {
		if f.Value == nil {
			params.Add(f.Field, "is.null")
			continue
		}
		params.Add(f.Field, "eq."+formatValue(f.Value))
	}
	return params
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case decimal.Decimal:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
