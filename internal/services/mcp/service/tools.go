package service

import (
	"fmt"

	"github.com/louisbranch/sheetkeeper/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	sheetToolsModuleName      = "sheet-tools"
	thresholdToolsModuleName  = "threshold-tools"
	cardToolsModuleName       = "card-tools"
	catalogToolsModuleName    = "catalog-tools"
	catalogResourceModuleName = "catalog-resources"
)

type registrationModule struct {
	name     string
	register func(registrationTarget) error
}

type registrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResourceTemplate(*mcp.ResourceTemplate, mcp.ResourceHandler)
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResourceTemplate(resourceTemplate *mcp.ResourceTemplate, handler mcp.ResourceHandler) {
	r.server.AddResourceTemplate(resourceTemplate, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.ResourceSnapshotInput, domain.ResourceSnapshotResult](),
	newMCPToolRegistrar[domain.StressMarkInput, domain.StressMarkResult](),
	newMCPToolRegistrar[domain.StressSetInput, domain.StressSetResult](),
	newMCPToolRegistrar[domain.GoldTotalInput, domain.GoldTotalResult](),
	newMCPToolRegistrar[domain.ThresholdsValidateInput, domain.ThresholdsValidateResult](),
	newMCPToolRegistrar[domain.ThresholdsDSInput, domain.ThresholdsDSResult](),
	newMCPToolRegistrar[domain.ThresholdsResolveInput, domain.ThresholdsResolveResult](),
	newMCPToolRegistrar[domain.DamageEvaluateInput, domain.DamageEvaluateResult](),
	newMCPToolRegistrar[domain.DomainCardsFilterInput, domain.DomainCardsResult](),
	newMCPToolRegistrar[domain.DomainCardsSearchInput, domain.DomainCardsSearchResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newRegistrationModules(cards domain.CardStore) []registrationModule {
	modules := []registrationModule{
		{
			name: sheetToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTools(registrar, []toolRegistration{
					{tool: domain.ResourceSnapshotTool(), handler: domain.ResourceSnapshotHandler()},
					{tool: domain.StressMarkTool(), handler: domain.StressMarkHandler()},
					{tool: domain.StressSetTool(), handler: domain.StressSetHandler()},
					{tool: domain.GoldTotalTool(), handler: domain.GoldTotalHandler()},
				})
			},
		},
		{
			name: thresholdToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTools(registrar, []toolRegistration{
					{tool: domain.ThresholdsValidateTool(), handler: domain.ThresholdsValidateHandler()},
					{tool: domain.ThresholdsDSTool(), handler: domain.ThresholdsDSHandler()},
					{tool: domain.ThresholdsResolveTool(), handler: domain.ThresholdsResolveHandler()},
					{tool: domain.DamageEvaluateTool(), handler: domain.DamageEvaluateHandler()},
				})
			},
		},
		{
			name: cardToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTool(registrar, domain.DomainCardsFilterTool(), domain.DomainCardsFilterHandler())
			},
		},
	}
	if cards == nil {
		return modules
	}
	return append(modules,
		registrationModule{
			name: catalogToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTool(registrar, domain.DomainCardsSearchTool(), domain.DomainCardsSearchHandler(cards))
			},
		},
		registrationModule{
			name: catalogResourceModuleName,
			register: func(registrar registrationTarget) error {
				registrar.AddResourceTemplate(domain.DomainCardResourceTemplate(), domain.DomainCardResourceHandler(cards))
				return nil
			},
		},
	)
}

type toolRegistration struct {
	tool    *mcp.Tool
	handler any
}

func registerTools(registrar registrationTarget, registrations []toolRegistration) error {
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerTool(registrar registrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
