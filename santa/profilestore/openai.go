package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/theimaginaryfoundation/santa-bot/santa"
	"github.com/theimaginaryfoundation/santa-bot/santa/fileutils"
	"github.com/theimaginaryfoundation/santa-bot/santa/provider"
)

// maxBioChars caps each biography sent to the model during consolidation.
const maxBioChars = 2000

// OpenAIEngine consolidates and answers through the OpenAI Responses API with strict
// JSON-schema output.
type OpenAIEngine struct {
	Client          *openai.Client
	Model           string
	Retry           provider.RetryPolicy
	MaxOutputTokens int64
}

type consolidateRequest struct {
	Profiles []string `json:"profiles"`
}

type personNote struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Mood    string `json:"mood"`
}

type consolidateResponse struct {
	People []personNote `json:"people"`
}

type completionRequest struct {
	Question  string `json:"question"`
	Knowledge string `json:"knowledge"`
}

type completionResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

var (
	consolidateSchema = provider.GenerateSchema[consolidateResponse]()
	completionSchema  = provider.GenerateSchema[completionResponse]()
)

func (e OpenAIEngine) check() error {
	if e.Client == nil {
		return errors.New("OpenAIEngine: client is nil")
	}
	if e.Model == "" {
		return errors.New("OpenAIEngine: model is empty")
	}
	return nil
}

func (e OpenAIEngine) call(ctx context.Context, instructions string, payload any, schemaName string, schema map[string]any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	maxTokens := e.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	params := responses.ResponseNewParams{
		Model:           e.Model,
		MaxOutputTokens: openai.Int(maxTokens),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(string(b), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   schemaName,
					Schema: schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	}

	resp, err := provider.CallWithRetry(ctx, e.Client, params, e.Retry)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// Consolidate asks the model for one note per person. If the model output cannot be
// decoded the raw documents are used as the digest so the run keeps going.
func (e OpenAIEngine) Consolidate(ctx context.Context, docs []string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	req := consolidateRequest{Profiles: make([]string, 0, len(docs))}
	for _, d := range docs {
		req.Profiles = append(req.Profiles, fileutils.Truncate(d, maxBioChars))
	}

	out, err := e.call(ctx, consolidatePrompt, req, "ProfileNotes", consolidateSchema)
	if err != nil {
		return "", err
	}
	var notes consolidateResponse
	if err := fileutils.DecodeModelJSON(out, &notes); err != nil || len(notes.People) == 0 {
		return strings.Join(docs, "\n"), nil
	}
	b, err := json.Marshal(notes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Complete answers query and returns a one-record list {answer, sources}. Undecodable
// output is passed through as plain text.
func (e OpenAIEngine) Complete(ctx context.Context, query string, digest string, docs []string) (santa.Response, error) {
	if err := e.check(); err != nil {
		return santa.Response{}, err
	}
	if digest == "" {
		digest = strings.Join(docs, "\n")
	}

	out, err := e.call(ctx, completionPrompt, completionRequest{Question: query, Knowledge: digest}, "ProfileAnswer", completionSchema)
	if err != nil {
		return santa.Response{}, err
	}
	var ans completionResponse
	if err := fileutils.DecodeModelJSON(out, &ans); err != nil {
		return santa.TextResponse(out), nil
	}
	return santa.RecordsResponse(santa.Record{
		{Key: "answer", Value: ans.Answer},
		{Key: "sources", Value: ans.Sources},
	}), nil
}
