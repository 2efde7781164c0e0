// Command sitecheck-mcp exposes the sitecheck API as MCP tools over stdio,
// so agent clients can run framework checks without speaking HTTP directly.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// checkRequest mirrors the sitecheck API request model.
type checkRequest struct {
	URL string `json:"url"`
}

// checkResponse mirrors the sitecheck API response model.
type checkResponse struct {
	Compatible  bool     `json:"compatible"`
	Frameworks  []string `json:"frameworks"`
	Error       string   `json:"error"`
	CacheStatus string   `json:"cache_status"`
}

func main() {
	apiURL := os.Getenv("SITECHECK_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("SITECHECK_API_KEY")

	s := server.NewMCPServer(
		"sitecheck",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	checkSiteTool := mcp.NewTool("check_site",
		mcp.WithDescription("Detect which frontend frameworks or site builders a website uses and whether the site is compatible with automated widget integration."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the website to check"),
		),
	)
	s.AddTool(checkSiteTool, handleCheckSite(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the sitecheck API and returns the
// response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleCheckSite(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/check-site", checkRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("check request failed: %v", err)), nil
		}

		var checkResp checkResponse
		if err := json.Unmarshal(respBody, &checkResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if checkResp.Error != "" {
			return mcp.NewToolResultError(checkResp.Error), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "URL: %s\n", url)
		fmt.Fprintf(&sb, "Compatible: %t\n", checkResp.Compatible)
		if len(checkResp.Frameworks) > 0 {
			fmt.Fprintf(&sb, "Frameworks: %s\n", strings.Join(checkResp.Frameworks, ", "))
		}
		if checkResp.CacheStatus != "" {
			fmt.Fprintf(&sb, "Cache: %s\n", checkResp.CacheStatus)
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}
