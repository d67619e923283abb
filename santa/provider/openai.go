// Package provider wraps the OpenAI Responses API calls shared by the profile store engines.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

// RetryPolicy lists how long to wait before each retry. The number of attempts is
// len(waits)+1 for the matching error class.
type RetryPolicy struct {
	RateLimitWaits   []time.Duration
	ServerErrorWaits []time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		RateLimitWaits:   []time.Duration{65 * time.Second, 100 * time.Second},
		ServerErrorWaits: []time.Duration{5 * time.Second, 30 * time.Second},
	}
}

// CallWithRetry sends params, retrying rate-limit and server errors per policy.
// Waiting honours ctx cancellation.
func CallWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams, policy RetryPolicy) (*responses.Response, error) {
	if client == nil {
		return nil, errors.New("provider: client is nil")
	}
	var rateLimited, serverErrs int
	for {
		resp, err := client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}

		var wait time.Duration
		switch {
		case IsRateLimitError(err) && rateLimited < len(policy.RateLimitWaits):
			wait = policy.RateLimitWaits[rateLimited]
			rateLimited++
		case IsServerError(err) && serverErrs < len(policy.ServerErrorWaits):
			wait = policy.ServerErrorWaits[serverErrs]
			serverErrs++
		default:
			if rateLimited+serverErrs > 0 {
				return nil, fmt.Errorf("openai responses: failed after %d attempts: %w", rateLimited+serverErrs+1, err)
			}
			return nil, err
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func statusCode(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	if code := statusCode(err); code != 0 {
		return code == http.StatusTooManyRequests
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func IsServerError(err error) bool {
	if err == nil {
		return false
	}
	if code := statusCode(err); code != 0 {
		return code >= http.StatusInternalServerError
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}

// GenerateSchema reflects T into a strict-mode JSON schema accepted by structured outputs.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schemaObj, err := schemaToMap(reflector.Reflect(v))
	if err != nil {
		panic(err)
	}
	makeStrict(schemaObj)
	return schemaObj
}

func schemaToMap(schema *jsonschema.Schema) (map[string]any, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// makeStrict marks every object closed and all of its properties required, recursively.
func makeStrict(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok && len(props) > 0 {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			sort.Strings(required)
			schema["required"] = required
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]any); ok {
				makeStrict(pm)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		makeStrict(items)
	}
}
