package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// ExtractInput is the input schema for the extract_fields tool.
type ExtractInput struct {
	XML      string `json:"xml" jsonschema:"a MARCXchange record as XML text"`
	MIMEType string `json:"mime_type,omitempty" jsonschema:"content type of the record (default application/marcxchange+xml)"`
}

// RecordOutput is the output schema for a record's fields.
type RecordOutput struct {
	ID     string        `json:"id"`
	Format string        `json:"format"`
	Fields []FieldOutput `json:"fields"`
	Count  int           `json:"count"`
}

// FieldOutput is one output field with its values in order.
type FieldOutput struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// GetRecordInput is the input schema for the get_record tool.
type GetRecordInput struct {
	ID string `json:"id" jsonschema:"the record identifier, usually <001a>:<001b>"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_fields",
		Description: "Extract search index fields from a MARCXchange record",
	}, s.handleExtract)

	if s.ports.Records != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_record",
			Description: "Get the stored index fields of a record",
		}, s.handleGetRecord)
	}
}

// handleExtract handles the extract_fields tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	if input.XML == "" {
		return nil, RecordOutput{}, errors.New("xml is required")
	}

	rec, err := s.ports.Index.Extract(ctx, &domain.RawRecord{
		URI:      "mcp",
		MIMEType: input.MIMEType,
		Content:  []byte(input.XML),
	})
	if err != nil {
		return nil, RecordOutput{}, err
	}

	return nil, toOutput(rec), nil
}

// handleGetRecord handles the get_record tool invocation.
func (s *Server) handleGetRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetRecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	rec, err := s.ports.Records.Get(ctx, input.ID)
	if err != nil {
		return nil, RecordOutput{}, err
	}
	return nil, toOutput(rec), nil
}

func toOutput(rec *domain.IndexedRecord) RecordOutput {
	out := RecordOutput{
		ID:     rec.ID,
		Format: rec.Format,
		Fields: make([]FieldOutput, len(rec.Fields)),
		Count:  rec.Fields.Len(),
	}
	for i, f := range rec.Fields {
		out.Fields[i] = FieldOutput{Name: f.Name, Values: f.Values}
	}
	return out
}
