package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

const DefaultModelName = "gemini-2.5-flash"

// Gemini generates the executive summary with the Gemini API. The client
// picks up GEMINI_API_KEY / GOOGLE_API_KEY from the environment.
type Gemini struct {
	Model string
}

func NewGemini() *Gemini {
	return &Gemini{Model: DefaultModelName}
}

type saleSummary struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Items string  `json:"items"`
}

type inventorySummary struct {
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

func (g *Gemini) Analyze(ctx context.Context, sales []domain.SaleRecord, products []domain.Product) (string, error) {
	prompt, err := buildPrompt(sales, products)
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	model := g.Model
	if model == "" {
		model = DefaultModelName
	}
	resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate sales analysis: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

func buildPrompt(sales []domain.SaleRecord, products []domain.Product) (string, error) {
	saleSummaries := make([]saleSummary, 0, len(sales))
	for _, sale := range sales {
		names := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			names = append(names, fmt.Sprintf("%s (x%d)", item.Name, item.Quantity))
		}
		saleSummaries = append(saleSummaries, saleSummary{
			Date:  sale.Date.Format("2006-01-02"),
			Total: sale.Total,
			Items: strings.Join(names, ", "),
		})
	}

	stockSummaries := make([]inventorySummary, 0, len(products))
	for _, product := range products {
		stockSummaries = append(stockSummaries, inventorySummary{
			Name:  product.Name,
			Stock: product.Stock,
			Price: product.Price,
		})
	}

	salesJSON, err := json.MarshalIndent(saleSummaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sales summary: %w", err)
	}
	stockJSON, err := json.MarshalIndent(stockSummaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode inventory summary: %w", err)
	}

	return "You are an expert data analyst for a general store & cosmetics shop.\n" +
		"Analyze the following point of sale data (currency: PKR / Rupees).\n\n" +
		"Sales history:\n" + string(salesJSON) + "\n\n" +
		"Current inventory:\n" + string(stockJSON) + "\n\n" +
		"Provide a brief, professional executive summary. Include:\n" +
		"1. Total revenue (in Rs.).\n" +
		"2. Best selling item.\n" +
		"3. Any low stock warnings.\n" +
		"4. One actionable business tip for a small retail store.\n\n" +
		"Keep it concise (under 150 words).", nil
}
