package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alibomaye27/yourvoice/pkg/model"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const jobWriterSystemPrompt = `You are a professional job description writer. You will be given a brief description of a job, and you need to generate a complete job posting with the following sections:

Required fields:
- title (string): The job title
- company (string): Company name if provided in prompt, otherwise leave empty
- department (string): Department name based on the role
- location (string): Location if provided in prompt, otherwise suggest a suitable location
- employment_type (string, one of: "full-time", "part-time", "contract", "internship"): Based on the role
- experience_level (string, one of: "entry", "mid", "senior", "executive"): Based on the role
- description (string): Detailed overview of the position
- salary_range_min (number): Suggested minimum salary in USD
- salary_range_max (number): Suggested maximum salary in USD
- application_deadline (string in YYYY-MM-DD format): Set to 30 days from today
- requirements (array of strings): Minimum qualifications
- responsibilities (array of strings): Key duties
- skills_required (array of strings): Technical and soft skills
- benefits (array of strings): Compensation and perks
- certifications_required (array of strings): Required certifications

Format your response as a JSON object with these exact keys.
Keep each array item concise and focused on a single point.
Ensure the content is professional and aligned with industry standards.
Make the content compelling and attractive to potential candidates.
For salary ranges, ensure they are realistic and competitive for the role and location.`

// Generator wraps the Google GenAI client for the single stateless prompt
// this service needs: turning a one-line brief into a structured job posting.
type Generator struct {
	client    *genai.Client
	modelName string
}

func NewGenerator(ctx context.Context, apiKey, modelName string) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if modelName = strings.TrimSpace(modelName); modelName == "" {
		modelName = defaultModel
	}
	return &Generator{client: client, modelName: modelName}, nil
}

// GenerateJobPosting expands a brief into a complete posting.
func (g *Generator) GenerateJobPosting(ctx context.Context, prompt string) (*model.GeneratedJob, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(jobWriterSystemPrompt, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate job posting: %w", err)
	}

	text := stripCodeFences(resp.Text())
	if text == "" {
		return nil, errors.New("generate job posting: empty model response")
	}

	var job model.GeneratedJob
	if err := json.Unmarshal([]byte(text), &job); err != nil {
		return nil, fmt.Errorf("parse generated posting: %w", err)
	}
	return &job, nil
}

// stripCodeFences removes a markdown ```json fence the model sometimes wraps
// its output in despite the JSON response mime type.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
