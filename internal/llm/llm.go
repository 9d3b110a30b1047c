// Package llm defines the LLM collaborator contract used for cover-letter
// generation and compensation extraction, with Groq and Gemini backends.
package llm

import (
	"context"

	"github.com/oclaw/coopmatch/internal/models"
)

// Compensation is the normalized result of compensation extraction, or
// nil when the raw text carries no extractable figure.
type Compensation struct {
	Value    float64
	Currency string
	Period   string
}

// Client is the LLM collaborator contract.
type Client interface {
	// GenerateCoverLetter drafts a cover letter for job, grounded in the
	// matched evidence the matcher already computed.
	GenerateCoverLetter(ctx context.Context, job models.Job, evidence []models.Evidence) (string, error)

	// ExtractCompensation parses a free-text compensation string into
	// structured fields, or returns (nil, nil) if none is extractable.
	ExtractCompensation(ctx context.Context, raw string) (*Compensation, error)
}

func buildCoverLetterSystemPrompt() string {
	return `You are an expert cover letter writer for university co-op and internship applications.
Write a concise, specific cover letter (3-4 short paragraphs) for the job described below.
Ground every claim in the provided evidence of matching résumé experience — never invent experience.
Address the role directly, mention the company by name, and close with a clear call to action.
Return ONLY the letter body. No subject line, no markdown formatting, no placeholder brackets.`
}

func buildCoverLetterUserPrompt(job models.Job, evidence []models.Evidence) string {
	var b []byte
	b = append(b, []byte("Job Title: "+job.Title+"\n")...)
	b = append(b, []byte("Company: "+job.Company+"\n")...)
	b = append(b, []byte("Summary:\n"+job.Summary+"\n\n")...)
	b = append(b, []byte("Matched evidence (requirement -> covered):\n")...)
	for _, e := range evidence {
		if !e.Covered {
			continue
		}
		b = append(b, []byte("- "+e.RequirementText+"\n")...)
	}
	return string(b)
}

func buildCompensationPrompt(raw string) string {
	return "Extract the compensation value, currency and pay period from this text as JSON " +
		`{"value": number, "currency": "CAD", "period": "hour|year|month"}` +
		" or null if no figure is present. Text:\n" + raw
}
