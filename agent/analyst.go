package agent

import (
	"context"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/docs"
	"github.com/etnz/coinfolio/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator builds the expert in charge of the conversation. Its
// only tools are the other experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and keep context of your previous questions.

			The user is here to understand his crypto portfolio: what he holds,
			what it cost him, and how it performs. Check the portfolio first, he
			will assume you know his assets.

			Devise a plan of questions for the experts and come up with the best
			response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the expert grounding answers in live market news.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert crypto market researcher,
		aware of the coins, the exchanges and the latest market news.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in crypto markets. You leverage Google Search to
			ground your assertions about coins, exchanges and market moves, and
			you know how to relate the latest news to the user's request.
		`}}},
		},
	}
}

// NewAnalyst returns the expert with direct access to the user's
// accounts. Its tools collect and render the live reports.
func NewAnalyst(quote string, exchanges ...coinfolio.Exchange) *Expert {
	lib := []Function{
		portfolioTool(quote, exchanges),
		holdingsTool(quote, exchanges),
		glossaryTool(),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He has direct access to the user's
		exchange accounts and computes the portfolio reports: holdings, cost
		basis, realized and unrealized profits, distribution.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst in charge of the user's crypto portfolio.
			Use the available tools to get live information about it:
			  - the valued holdings per exchange
			  - the aggregated portfolio performance report
			  - the definition of every term used in the reports
			Other experts might ask you questions, pardon their approximate
			language and figure out what they meant.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// toolError wraps err as a function response.
func toolError(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func toolOutput(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

func portfolioTool(quote string, exchanges []coinfolio.Exchange) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Portfolio",
			Description: `Portfolio computes the aggregated performance report over
			every exchange account: invested capital, current value, realized and
			unrealized profits, ROI, and the value distribution per asset.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted portfolio performance report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			assets := coinfolio.CollectAll(ctx, quote, exchanges...)
			p := coinfolio.ComputePortfolioMetrics(assets, coinfolio.M(coinfolio.DefaultMinAssetValue, quote))
			return toolOutput(id, "Portfolio", renderer.PortfolioMarkdown(&p))
		},
	}
}

func holdingsTool(quote string, exchanges []coinfolio.Exchange) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings lists every balance held on every exchange
			account, valued at the current market price.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of valued balances per exchange.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			var reports []*coinfolio.HoldingReport
			for _, x := range exchanges {
				report, err := coinfolio.CollectHoldings(ctx, x, quote)
				if err != nil {
					return toolError(id, "Holdings", err)
				}
				reports = append(reports, report)
			}
			return toolOutput(id, "Holdings", renderer.HoldingsMarkdown(reports...))
		},
	}
}

func glossaryTool() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Glossary",
			Description: `Glossary defines every term used in the reports:
			average cost, cost basis, FIFO, realized profit and the rest.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown glossary of report terms.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			content, err := docs.GetTopic("glossary")
			if err != nil {
				return toolError(id, "Glossary", err)
			}
			return toolOutput(id, "Glossary", content)
		},
	}
}
