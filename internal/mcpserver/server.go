package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/akolanti/PolicyChat/internal/rag/retrieve"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

const Version = "0.1.0"

// Server exposes the policy knowledge base to MCP clients. The tools run
// the same retrieval the chat pipeline uses, so an agent sees exactly the
// context the assistant would be grounded on.
type Server struct {
	documents docModel.DocumentStore
	server    *mcp.Server
	logger    *logger_i.Logger
}

func NewServer(documents docModel.DocumentStore) *Server {
	impl := &mcp.Implementation{
		Name:    "policychat",
		Version: Version,
	}

	s := &Server{
		documents: documents,
		server:    mcp.NewServer(impl, nil),
		logger:    logger_i.NewLogger("MCPServer"),
	}

	s.registerTools()
	return s
}

// Handler returns the streamable HTTP handler so the MCP endpoint can be
// mounted on the main API router.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"the question to find relevant policy sections for"`
}

type SearchOutput struct {
	Context string   `json:"context"`
	Sources []string `json:"sources"`
}

type DocumentListOutput struct {
	Documents []DocumentInfo `json:"documents"`
	Count     int            `json:"count"`
}

type DocumentInfo struct {
	Id                string `json:"id"`
	Name              string `json:"name"`
	PageCount         int    `json:"page_count"`
	WordCount         int    `json:"word_count"`
	SectionCount      int    `json:"section_count"`
	ExtractionQuality string `json:"extraction_quality"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_policies",
		Description: "Search the company policy knowledge base and return the most relevant sections",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents currently in the company policy knowledge base",
	}, s.handleListDocuments)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	policyContext, sources := retrieve.SearchWithSources(input.Query, s.documents.List(ctx))
	s.logger.Debug("MCP search", "query", input.Query, "sources", len(sources))

	return nil, SearchOutput{
		Context: policyContext,
		Sources: sources,
	}, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, DocumentListOutput, error) {
	docs := s.documents.List(ctx)

	output := DocumentListOutput{
		Documents: make([]DocumentInfo, len(docs)),
		Count:     len(docs),
	}
	for i, doc := range docs {
		output.Documents[i] = DocumentInfo{
			Id:                doc.Id,
			Name:              doc.Name,
			PageCount:         doc.Metadata.PageCount,
			WordCount:         doc.Metadata.WordCount,
			SectionCount:      len(doc.Sections),
			ExtractionQuality: string(doc.Metadata.ExtractionQuality),
		}
	}

	return nil, output, nil
}
