package engine

import (
	"mancala/communication/client"
	"mancala/experiments/metrics"
	"mancala/game"
	"time"
)

// RemoteAgent asks a solver server for every move.
type RemoteAgent struct {
	client *client.Client
}

func NewRemoteAgent(c *client.Client) *RemoteAgent {
	return &RemoteAgent{client: c}
}

func (a *RemoteAgent) FindMove(board *game.Board, session *game.Session) (int, metrics.SearchMetric, error) {
	resp, err := a.client.Solve(board, session)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	return resp.Pit, metrics.SearchMetric{
		Duration:   time.Duration(resp.DurationMs) * time.Millisecond,
		Nodes:      resp.Nodes,
		Branches:   resp.Stats.Branches(),
		Pit:        resp.Pit,
		Guaranteed: resp.Guaranteed,
	}, nil
}
