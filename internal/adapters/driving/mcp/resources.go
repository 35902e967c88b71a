package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for ganzhi resources.
const uriScheme = "ganzhi://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "Documents in the knowledge index, in ID order",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Whether a knowledge index is loaded, and its size",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Content of a knowledge document",
		MIMEType:    "text/plain",
	}, s.handleDocumentResource)
}

// handleCorpusResource lists the indexed documents without their content.
func (s *Server) handleCorpusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Knowledge.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID       int    `json:"id"`
		Source   string `json:"source"`
		Category string `json:"category"`
		URI      string `json:"uri"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:       docs[i].ID,
			Source:   docs[i].Source,
			Category: docs[i].Category,
			URI:      documentURI(docs[i].ID),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleStatusResource reports the knowledge index status.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, s.ports.Knowledge.Status(ctx))
}

// handleDocumentResource returns the content of one document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractDocumentID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Knowledge.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	if id >= len(docs) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     docs[id].Content,
		}},
	}, nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func documentURI(id int) string {
	return uriScheme + "documents/" + strconv.Itoa(id)
}

// extractDocumentID extracts the document ID from a URI like ganzhi://documents/{documentId}.
func extractDocumentID(uri string) (int, bool) {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
