package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
)

// d1ChunkSize bounds the statements per remote batch request.
const d1ChunkSize = 50

// d1Base is a variable so tests can point the adapter at a local server.
var d1Base = "https://api.cloudflare.com/client/v4/accounts"

// D1Store is the production adapter, speaking the Cloudflare D1 HTTP API.
// Parameters are rendered into the SQL text before submission.
type D1Store struct {
	accountID  string
	databaseID string
	apiToken   string
	client     *http.Client
	logger     arbor.ILogger
}

func NewD1Store(accountID, databaseID, apiToken string, logger arbor.ILogger) *D1Store {
	return &D1Store{
		accountID:  accountID,
		databaseID: databaseID,
		apiToken:   apiToken,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (s *D1Store) endpoint(operation string) string {
	return fmt.Sprintf("%s/%s/d1/database/%s/%s", d1Base, s.accountID, s.databaseID, operation)
}

type d1Statement struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

type d1QueryResponse struct {
	Success bool `json:"success"`
	Result  []struct {
		Results []map[string]any `json:"results"`
	} `json:"result"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (s *D1Store) ExecuteBatch(ctx context.Context, queries []Query) error {
	for start := 0; start < len(queries); start += d1ChunkSize {
		end := min(start+d1ChunkSize, len(queries))

		statements := make([]d1Statement, 0, end-start)
		for _, q := range queries[start:end] {
			rendered, err := Render(q)
			if err != nil {
				return fmt.Errorf("failed to render statement: %w", err)
			}
			statements = append(statements, d1Statement{SQL: rendered, Params: []any{}})
		}

		if _, err := s.post(ctx, s.endpoint("batch"), statements); err != nil {
			return fmt.Errorf("batch write failed: %w", err)
		}
	}
	return nil
}

func (s *D1Store) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	body, err := s.post(ctx, s.endpoint("query"), d1Statement{SQL: "SELECT id FROM jobs", Params: []any{}})
	if err != nil {
		return nil, fmt.Errorf("failed to query existing ids: %w", err)
	}

	var resp d1QueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode existing ids response: %w", err)
	}

	ids := make(map[string]struct{})
	if len(resp.Result) > 0 {
		for _, row := range resp.Result[0].Results {
			if id, ok := row["id"].(string); ok {
				ids[id] = struct{}{}
			}
		}
	}
	return ids, nil
}

func (s *D1Store) InitializeGeoTables(ctx context.Context, countries map[string]string, regions map[string]string) error {
	body, err := s.post(ctx, s.endpoint("query"), d1Statement{SQL: "SELECT COUNT(*) AS n FROM countries", Params: []any{}})
	if err != nil {
		return fmt.Errorf("failed to count countries: %w", err)
	}

	var resp d1QueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode count response: %w", err)
	}
	if len(resp.Result) > 0 && len(resp.Result[0].Results) > 0 {
		if n, ok := resp.Result[0].Results[0]["n"].(float64); ok && n > 0 {
			s.logger.Debug().Int("countries", int(n)).Msg("Geo tables already populated, skipping")
			return nil
		}
	}

	s.logger.Info().
		Int("countries", len(countries)).
		Int("regions", len(regions)).
		Msg("Populating geo reference tables")
	return s.ExecuteBatch(ctx, BuildGeoQueries(countries, regions))
}

func (s *D1Store) Close() error {
	return nil
}

func (s *D1Store) post(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("D1 API error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
