package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEntriesTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerCreateEntryTool(srv, svc)
	registerWriteEntryTool(srv, svc)
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List every journal entry, newest first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		results, err := svc.ListEntries(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries by date or preview text, grouped by month."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text, matched against dates like \"Jan 2\" and previews."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sections, err := svc.SearchEntries(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		count := 0
		for _, s := range sections {
			count += s.Count
		}
		return toJSONResult(map[string]any{
			"query":    query,
			"sections": sections,
			"count":    count,
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry and its content."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier, filename or unique id prefix."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entry",
		mcp.WithDescription("Start a new entry."),
		mcp.WithString("content",
			mcp.Description("Optional text to start the entry with."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Content string `json:"content"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateEntry(ctx, args.Content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerWriteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"write_entry",
		mcp.WithDescription("Replace or append to the content of an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier, filename or unique id prefix."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Markdown text to write."),
		),
		mcp.WithBoolean("append",
			mcp.Description("Append to the existing content instead of replacing it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      string `json:"id"`
			Content string `json:"content"`
			Append  bool   `json:"append"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.WriteEntry(ctx, args.ID, args.Content, args.Append)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
