// ABOUTME: Chat and history endpoints of the CampusBot API
// ABOUTME: Query submission threads the sticky conversation id

package client

import (
	"context"
	"time"
)

// QueryRequest is the body of POST /api/chat/query. ConversationID is
// empty on the first query of a session; the backend assigns one and
// expects it echoed verbatim on every later query.
type QueryRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"session_id,omitempty"`
}

// QueryResult is the backend's answer to one query.
type QueryResult struct {
	Response       string `json:"response"`
	ConversationID string `json:"session_id"`
}

// HistoryEntry is one persisted query/response pair. Read-only on the
// client; the backend owns these records.
type HistoryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitQuery sends one query to POST /api/chat/query
func (c *Client) SubmitQuery(ctx context.Context, query, conversationID string) (*QueryResult, error) {
	var result QueryResult
	req := QueryRequest{Query: query, ConversationID: conversationID}
	if err := c.postJSON(ctx, "/api/chat/query", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History fetches the caller's persisted query history, newest first
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.getJSON(ctx, "/api/chat/history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AllQueries fetches the query log across all users. Admin only.
func (c *Client) AllQueries(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.getJSON(ctx, "/api/admin/all-queries", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteQuery removes one entry from the query log. Admin only.
func (c *Client) DeleteQuery(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/admin/queries/"+id)
}

// MakeAdmin grants the admin role to a user. Admin only.
func (c *Client) MakeAdmin(ctx context.Context, userID string) error {
	return c.postJSON(ctx, "/api/admin/make-admin/"+userID, struct{}{}, nil)
}
