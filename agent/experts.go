package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/docs"
	"github.com/etnz/qianbao/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Assets is the read-only view of the assets experts work with.
type Assets interface {
	Assets() []qianbao.Asset
	Currency() string
	Total() qianbao.Money
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user keeps a simple list of assets: a name, an amount and an icon each, all in
			the same currency. They come here to understand what they own, or how to use qb.
			Ask the Bookkeeper before assuming anything about their assets.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request. Answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert grounded with Google Search, for general
// questions about kinds of assets.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a personal finance advisor.
		Ask the Advisor about kinds of assets, how they usually evolve, or any question
		that needs recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a personal finance advisor. You leverage Google Search to ground your
			assertions. You never know the user's assets yourself, other experts do.
				`}}},
		},
	}
}

// NewBookkeeper returns the expert reading the user's assets and the qb
// documentation.
func NewBookkeeper(assets Assets) *Expert {
	lib := BookkeeperFunctions(assets)
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. It reads the user's list of assets, their amounts and total,
		and knows the qb documentation.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the bookkeeper of the user's assets.
				Use the available tools to read the list of assets, their total, the preset icons,
				and the documentation of qb. Other experts might ask you questions with approximate
				language, figure out what they meant. Never invent an asset.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// BookkeeperFunctions returns the functions of the Bookkeeper over assets.
func BookkeeperFunctions(assets Assets) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "ListAssets",
				Description: "ListAssets lists every asset in the order they were added, with the total.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the assets: icon, name, amount and id.",
				},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "ListAssets", renderer.RenderBook(renderer.NewBook(assets.Assets(), assets.Total())))
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Total",
				Description: "Total returns the sum of all asset amounts, formatted in the user's currency.",
				Response:    &genai.Schema{Type: genai.TypeString},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "Total", assets.Total().String())
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Icons",
				Description: "Icons lists the preset icons an asset can use.",
				Response:    &genai.Schema{Type: genai.TypeString},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "Icons", renderer.RenderIcons(renderer.NewIcons()))
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Documentation",
				Description: "Documentation returns a topic of the qb user documentation.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"topic": {
							Type:        genai.TypeString,
							Description: "One of: readme, " + strings.Join(topics(), ", ") + ".",
						},
					},
					Required: []string{"topic"},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "The topic in markdown."},
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				topic, ok := args["topic"].(string)
				if !ok {
					return errorResponse(id, "Documentation", fmt.Errorf("argument 'topic' is not a string as expected but %T", args["topic"]))
				}
				doc, err := docs.GetTopic(topic)
				if err != nil {
					return errorResponse(id, "Documentation", err)
				}
				return outputResponse(id, "Documentation", doc)
			},
		},
	}
}

func topics() []string {
	t, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return t
}
