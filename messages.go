package main

import "second-earth/server/world"

type clientMessage struct {
	Type string `json:"type"`
	Seed string `json:"seed,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type worldMessage struct {
	Type       string           `json:"type"`
	Seed       string           `json:"seed"`
	Grid       world.GridRecord `json:"grid"`
	ServerTime int64            `json:"serverTime"`
}

type minimapMessage struct {
	Type    string             `json:"type"`
	CenterX int                `json:"centerX"`
	CenterY int                `json:"centerY"`
	Width   int                `json:"width"`
	Height  int                `json:"height"`
	Cells   []world.CellView   `json:"cells"`
}

type errorMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}
