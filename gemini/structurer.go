// Package gemini implements the optional LLM structuring step using Google
// Gemini: the assembled profile, minus catalog and hero products, is sent
// for cleanup and comes back constrained to the same schema.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"shopify-insights/internal/types"
)

const model = "gemini-2.5-flash"

// Ensure Structurer implements types.Structurer at compile time.
var _ types.Structurer = (*Structurer)(nil)

// Structurer implements types.Structurer using Google Gemini.
type Structurer struct {
	client *genai.Client
	logger types.Logger
}

// NewStructurer creates a new Structurer.
func NewStructurer(client *genai.Client, logger types.Logger) *Structurer {
	return &Structurer{client: client, logger: logger}
}

// Structure sends the profile (without catalog/hero products) to Gemini,
// reattaches the withheld fields verbatim and re-validates the combined
// object. One request, one JSON response; no retries.
func (s *Structurer) Structure(ctx context.Context, profile *types.BrandProfile) (*types.BrandProfile, error) {
	prompt, err := BuildPrompt(profile)
	if err != nil {
		return nil, err
	}

	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("gemini returned nil result")
	}

	s.logger.Debugf("Gemini returned %d bytes of structured output", len(result.Text()))

	return MergeResponse(result.Text(), profile)
}

// BuildConfig returns the GenerateContentConfig for structuring calls:
// JSON-only output with a bounded response size.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
		Temperature:      &temp,
	}
}

// BuildPrompt renders the structuring prompt from the profile with the
// catalog and hero products withheld.
func BuildPrompt(profile *types.BrandProfile) (string, error) {
	partial := *profile
	partial.ProductCatalog = nil
	partial.HeroProducts = nil

	raw, err := json.MarshalIndent(&partial, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	return fmt.Sprintf(`You are an expert data cleaning and extraction API. Analyze the provided raw JSON data and structure it according to the target schema.

Follow these critical rules:
1. For the 'about_text' field: extract ONLY the narrative paragraphs describing the company. EXCLUDE surrounding text such as "Skip to content", sale announcements, product categories, navigation links and other menu-like items. The result must be a clean, readable block of text.
2. For the 'faqs' field: keep ONLY legitimate question-and-answer pairs. Discard items that are actually navigation links, headers or other non-FAQ text.
3. The output MUST be a single valid JSON object that strictly adheres to the schema. Do not add any extra text or explanations.

## Target JSON Schema:
%s

## Raw Input Data:
%s

## Structured JSON Output:
`, targetSchema, string(raw)), nil
}

// MergeResponse parses the model's JSON output, reattaches the original
// catalog and hero products verbatim, and validates the combined object.
// Any parse or schema failure surfaces as a *types.SchemaError.
func MergeResponse(responseText string, original *types.BrandProfile) (*types.BrandProfile, error) {
	var cleaned types.BrandProfile
	if err := json.Unmarshal([]byte(responseText), &cleaned); err != nil {
		return nil, &types.SchemaError{Err: fmt.Errorf("structured output is not valid JSON: %w", err)}
	}

	cleaned.ProductCatalog = original.ProductCatalog
	cleaned.HeroProducts = original.HeroProducts
	cleaned.Normalize()

	if err := types.ValidateProfile(&cleaned); err != nil {
		return nil, err
	}
	return &cleaned, nil
}

// targetSchema mirrors the BrandProfile JSON shape for the prompt.
const targetSchema = `{
  "type": "object",
  "required": ["is_shopify", "base_url", "product_catalog", "hero_products", "policies", "faqs", "social_handles", "contact_details", "important_links"],
  "properties": {
    "is_shopify": {"type": "boolean"},
    "brand_name": {"type": "string"},
    "base_url": {"type": "string", "format": "uri"},
    "product_catalog": {"type": "array", "items": {"$ref": "#/definitions/product"}},
    "hero_products": {"type": "array", "maxItems": 12, "items": {"$ref": "#/definitions/product"}},
    "policies": {
      "type": "object",
      "properties": {
        "privacy_policy_url": {"type": "string", "format": "uri"},
        "refund_policy_url": {"type": "string", "format": "uri"},
        "terms_url": {"type": "string", "format": "uri"},
        "shipping_policy_url": {"type": "string", "format": "uri"}
      }
    },
    "faqs": {
      "type": "array",
      "maxItems": 50,
      "items": {
        "type": "object",
        "required": ["question", "answer"],
        "properties": {
          "question": {"type": "string"},
          "answer": {"type": "string"}
        }
      }
    },
    "social_handles": {
      "type": "object",
      "properties": {
        "instagram": {"type": "string"},
        "facebook": {"type": "string"},
        "tiktok": {"type": "string"},
        "twitter": {"type": "string"},
        "youtube": {"type": "string"},
        "linkedin": {"type": "string"},
        "pinterest": {"type": "string"},
        "others": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    },
    "contact_details": {
      "type": "object",
      "properties": {
        "emails": {"type": "array", "maxItems": 10, "items": {"type": "string"}},
        "phones": {"type": "array", "maxItems": 10, "items": {"type": "string"}},
        "address": {"type": "string"}
      }
    },
    "about_text": {"type": "string", "maxLength": 2000},
    "important_links": {
      "type": "object",
      "properties": {
        "order_tracking": {"type": "string", "format": "uri"},
        "contact_us": {"type": "string", "format": "uri"},
        "blog": {"type": "string", "format": "uri"},
        "others": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    }
  },
  "definitions": {
    "product": {
      "type": "object",
      "required": ["title"],
      "properties": {
        "title": {"type": "string"},
        "handle": {"type": "string"},
        "url": {"type": "string", "format": "uri"},
        "price": {"type": "string"},
        "currency": {"type": "string", "minLength": 3, "maxLength": 3},
        "image": {"type": "string"},
        "tags": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`
