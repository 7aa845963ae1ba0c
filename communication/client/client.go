package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mancala/communication"
	"mancala/game"
	"net/http"
	"time"
)

// Client talks to a solver server.
type Client struct {
	serverURL string
	http      *http.Client
}

func NewClient(serverURL string, timeout time.Duration) *Client {
	return &Client{
		serverURL: serverURL,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) Solve(board *game.Board, session *game.Session) (communication.SolveResponse, error) {
	var resp communication.SolveResponse
	err := c.post("/solve", communication.NewPosition(board, session), &resp)
	return resp, err
}

func (c *Client) Turn(board *game.Board, session *game.Session, pit int) (communication.TurnResponse, error) {
	var resp communication.TurnResponse
	req := communication.TurnRequest{Position: communication.NewPosition(board, session), Pit: pit}
	err := c.post("/turn", req, &resp)
	return resp, err
}

func (c *Client) post(path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.http.Post(c.serverURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, data)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
