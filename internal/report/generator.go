package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"brief-service/internal/estimate"
	"brief-service/internal/form"
	"brief-service/pkg/config"
	"brief-service/prometheus"
)

// Result is the tagged outcome of a generation attempt: either a validated
// StructuredReport, or the deterministic fallback text with the degradation
// reason. Callers can distinguish "config missing" from "malformed output"
// through the reason without the pipeline ever hard-failing.
type Result struct {
	Report *StructuredReport
	Text   string
	Reason string
}

// Degraded reports whether the generation fell back to the estimator.
func (r Result) Degraded() bool { return r.Report == nil }

// Request carries everything the backend needs for one report.
type Request struct {
	Form           form.Normalized
	PricingText    string
	TenantName     string
	TenantEmail    string
	RecipientName  string
	RecipientEmail string
}

// Generator produces a structured report from a normalized submission.
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client

	costs   estimate.CostTable
	regions estimate.RegionMultipliers
}

// NewGenerator builds a generator from config with the v1 cost tables.
func NewGenerator(cfg *config.AIConfig) *Generator {
	return &Generator{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		costs:   estimate.DefaultCostTable,
		regions: estimate.DefaultRegionMultipliers,
	}
}

const systemPrompt = "Jesteś architektem-prowadzącym i kosztorysantem w Polsce. " +
	"Tworzysz raport roboczy dla architekta na podstawie briefu inwestora. " +
	"Odpowiadasz wyłącznie obiektem JSON zgodnym z przekazanym schematem. " +
	"Każdy fakt i każda pozycja kalkulacji musi mieć pole source. " +
	"Jeżeli brakuje danych, wskaż założenia oraz pytania konieczne do doprecyzowania. " +
	"Pisz po polsku, rzeczowo i profesjonalnie. Nie udzielaj porady prawnej."

// reportSchema is the actual contract with the model: object shape, enumerated
// source values and minimum lengths per section.
const reportSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["meta", "facts", "questions", "missing_docs", "fee_estimate", "build_cost_estimate", "risks", "assumptions", "next_steps", "client_email"],
  "properties": {
    "meta": {
      "type": "object",
      "required": ["title", "summary", "language"],
      "properties": {
        "title": {"type": "string"},
        "summary": {"type": "string"},
        "language": {"type": "string"}
      }
    },
    "facts": {
      "type": "array",
      "minItems": 3,
      "items": {
        "type": "object",
        "required": ["section", "label", "value", "source", "confidence"],
        "properties": {
          "section": {"type": "string"},
          "label": {"type": "string"},
          "value": {"type": "string"},
          "source": {"type": "string", "enum": ["client_form", "assumption"]},
          "confidence": {"type": "string", "enum": ["high", "medium", "low"]}
        }
      }
    },
    "questions": {
      "type": "object",
      "required": ["blockers", "important", "optional"],
      "properties": {
        "blockers": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "important": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "optional": {"type": "array", "items": {"type": "string"}}
      }
    },
    "missing_docs": {"type": "array", "items": {"type": "string"}},
    "fee_estimate": {
      "type": "object",
      "required": ["currency", "calc_table", "total_low_pln", "total_high_pln", "notes"],
      "properties": {
        "currency": {"type": "string"},
        "calc_table": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["item", "basis", "qty", "unit", "unit_price_pln", "amount_pln", "source", "justification"],
            "properties": {
              "item": {"type": "string"},
              "basis": {"type": "string"},
              "qty": {"type": "number"},
              "unit": {"type": "string"},
              "unit_price_pln": {"type": "number"},
              "amount_pln": {"type": "number"},
              "source": {"type": "string", "enum": ["pricing_text", "assumption"]},
              "justification": {"type": "string"}
            }
          }
        },
        "total_low_pln": {"type": "number"},
        "total_high_pln": {"type": "number"},
        "notes": {"type": "string"}
      }
    },
    "build_cost_estimate": {
      "type": "object",
      "required": ["area_m2", "standard", "region", "unit_cost_pln_m2", "total_low_pln", "total_mid_pln", "total_high_pln", "cost_per_m2_table", "notes"],
      "properties": {
        "area_m2": {"type": "number"},
        "standard": {"type": "string"},
        "region": {"type": "string"},
        "unit_cost_pln_m2": {"type": "number"},
        "total_low_pln": {"type": "number"},
        "total_mid_pln": {"type": "number"},
        "total_high_pln": {"type": "number"},
        "cost_per_m2_table": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["item", "low_pln_m2", "high_pln_m2", "source"],
            "properties": {
              "item": {"type": "string"},
              "low_pln_m2": {"type": "number"},
              "high_pln_m2": {"type": "number"},
              "source": {"type": "string"}
            }
          }
        },
        "notes": {"type": "string"}
      }
    },
    "risks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["area", "priority", "risk", "impact", "mitigation"],
        "properties": {
          "area": {"type": "string"},
          "priority": {"type": "string", "enum": ["high", "medium", "low"]},
          "risk": {"type": "string"},
          "impact": {"type": "string"},
          "mitigation": {"type": "string"}
        }
      }
    },
    "assumptions": {"type": "array", "items": {"type": "string"}},
    "next_steps": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "client_email": {
      "type": "object",
      "required": ["subject", "body"],
      "properties": {
        "subject": {"type": "string"},
        "body": {"type": "string"}
      }
    }
  }
}`

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat any           `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate asks the backend for a schema-constrained report. Any failure
// (unconfigured backend, transport error, non-2xx, non-JSON, non-object,
// schema violation) degrades to the estimator output with an in-band error
// annotation. Single attempt; no retry.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	if g.apiKey == "" {
		return g.degrade(req, "backend not configured")
	}

	payload := map[string]any{
		"company":   map[string]string{"name": req.TenantName, "email": req.TenantEmail},
		"architect": map[string]string{"name": req.RecipientName, "email": req.RecipientEmail},
		"pricing_text_from_company": req.PricingText,
		"brief_by_section":          req.Form.GroupBySection(),
		"deterministic_baseline":    estimate.Compute(req.Form, g.costs, g.regions),
		"build_cost_table_m2": map[string]any{
			"standard_base_m2_pln": g.costs,
			"region_multiplier":    g.regions,
		},
	}
	userContent, err := json.Marshal(payload)
	if err != nil {
		return g.degrade(req, fmt.Sprintf("payload encode: %v", err))
	}

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(userContent)},
		},
		ResponseFormat: map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "brief_report",
				"strict": true,
				"schema": json.RawMessage(reportSchema),
			},
		},
	})
	if err != nil {
		return g.degrade(req, fmt.Sprintf("request encode: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return g.degrade(req, fmt.Sprintf("request build: %v", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	prometheus.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return g.degrade(req, fmt.Sprintf("backend call: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return g.degrade(req, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr chatError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return g.degrade(req, fmt.Sprintf("backend status %d: %s", resp.StatusCode, apiErr.Error.Message))
		}
		return g.degrade(req, fmt.Sprintf("backend status %d", resp.StatusCode))
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return g.degrade(req, fmt.Sprintf("response decode: %v", err))
	}
	if len(chat.Choices) == 0 {
		return g.degrade(req, "empty response")
	}

	content := []byte(chat.Choices[0].Message.Content)

	// The content must be a JSON object; anything else is a contract breach.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(content, &probe); err != nil {
		return g.degrade(req, fmt.Sprintf("malformed output: %v", err))
	}

	var structured StructuredReport
	if err := json.Unmarshal(content, &structured); err != nil {
		return g.degrade(req, fmt.Sprintf("schema decode: %v", err))
	}
	if err := structured.Validate(); err != nil {
		return g.degrade(req, fmt.Sprintf("schema violation: %v", err))
	}

	prometheus.RecordGeneration("ai")
	return Result{Report: &structured}
}

// degrade builds the fallback result: the estimator's deterministic report
// with the failure annotated in-band for operators reading the raw text.
func (g *Generator) degrade(req Request, reason string) Result {
	prometheus.RecordGeneration("fallback")
	text := estimate.Report(req.Form, req.PricingText, g.costs, g.regions)
	return Result{
		Text:   text + "\n\n[AI ERROR: " + reason + "]",
		Reason: reason,
	}
}
