package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/jera/internal/docservice"
	"github.com/starford/jera/internal/testutil"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()

	docsDir, store := testutil.TestDocs(t)
	db := testutil.TestJournal(t)
	svc := docservice.NewService(store, db, "files.json")
	return New(svc), docsDir
}

func addDoc(t *testing.T, docsDir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(docsDir, name), []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we test
	// through the tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_documents":
		result, err = srv.listDocuments(ctx, req)
	case "rebuild_manifest":
		result, err = srv.rebuildManifest(ctx, req)
	case "build_history":
		result, err = srv.buildHistory(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestRebuildAndListDocuments(t *testing.T) {
	srv, docsDir := testServer(t)
	addDoc(t, docsDir, "report_01-15-24.html")
	addDoc(t, docsDir, "index.html")

	r := callTool(t, srv, "rebuild_manifest", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("rebuild error: %s", resultText(r))
	}
	var sum docservice.Summary
	if err := json.Unmarshal([]byte(resultText(r)), &sum); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if sum.Total != 2 || sum.Dated != 1 {
		t.Errorf("summary = %+v", sum)
	}

	r = callTool(t, srv, "list_documents", map[string]interface{}{})
	text := resultText(r)
	want := "report_01-15-24.html\nindex.html"
	if text != want {
		t.Errorf("list = %q, want %q", text, want)
	}
}

func TestListDocuments_BeforeBuild(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_documents", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error before first build")
	}
}

func TestListDocuments_EmptyDocsDir(t *testing.T) {
	srv, _ := testServer(t)
	_ = callTool(t, srv, "rebuild_manifest", map[string]interface{}{})

	r := callTool(t, srv, "list_documents", map[string]interface{}{})
	if text := resultText(r); text != "no documents" {
		t.Errorf("list = %q, want %q", text, "no documents")
	}
}

func TestBuildHistory(t *testing.T) {
	srv, docsDir := testServer(t)
	addDoc(t, docsDir, "a.html")

	_ = callTool(t, srv, "rebuild_manifest", map[string]interface{}{})
	_ = callTool(t, srv, "rebuild_manifest", map[string]interface{}{})

	r := callTool(t, srv, "build_history", map[string]interface{}{"limit": 1})
	text := resultText(r)
	if !strings.Contains(text, `"total": 1`) {
		t.Errorf("history = %q", text)
	}
	var runs []map[string]interface{}
	if err := json.Unmarshal([]byte(text), &runs); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("len = %d, want 1 (limit)", len(runs))
	}
}

func TestBuildHistory_Empty(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "build_history", map[string]interface{}{})
	if text := resultText(r); text != "no build runs recorded" {
		t.Errorf("history = %q", text)
	}
}

func TestManifestResource(t *testing.T) {
	srv, docsDir := testServer(t)
	addDoc(t, docsDir, "only.html")
	_ = callTool(t, srv, "rebuild_manifest", map[string]interface{}{})

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "jera://manifest"
	contents, err := srv.readManifestResource(context.Background(), req)
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected contents type %T", contents[0])
	}
	if !strings.Contains(tc.Text, "only.html") {
		t.Errorf("resource text = %q", tc.Text)
	}
}
