package main

import "encoding/json"

// Client -> Server message types
const (
	MsgList    = "list"    // list battles
	MsgLeave   = "leave"   // stop watching
	MsgSummary = "summary" // request a live summary
)

// Server -> Client message types
const (
	MsgWatching = "watching"
	MsgBattles  = "battles"
	MsgError    = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// EffectBatch is the binary frame pushed to spectators
type EffectBatch struct {
	Battle  string   `msgpack:"b"`
	Frame   uint64   `msgpack:"fr"`
	Effects []Effect `msgpack:"e"`
}

// WatchingMsg confirms a subscription
type WatchingMsg struct {
	Battle string `json:"bid"`
	Frame  uint64 `json:"frame"`
}

// BattleInfo is used in the battle list
type BattleInfo struct {
	ID         string     `json:"id"`
	Difficulty Difficulty `json:"difficulty"`
	Frame      uint64     `json:"frame"`
	Spectators int        `json:"spectators"`
	Over       bool       `json:"over"`
}

// SideSummary is the live state of one faction
type SideSummary struct {
	Funds   float64        `json:"funds"`
	Units   map[string]int `json:"units"`
	Bunkers int            `json:"bunkers"`
}

// BattleSummary is the live snapshot returned by the summary endpoint
type BattleSummary struct {
	ID               string         `json:"id"`
	Frame            uint64         `json:"frame"`
	Over             bool           `json:"over"`
	ProductionHalted bool           `json:"production_halted"`
	Sides            [2]SideSummary `json:"sides"`
}

// CreatedMsg is returned when a battle is started over HTTP
type CreatedMsg struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Watch string `json:"watch"`
}

// TokenMsg carries a spectator token
type TokenMsg struct {
	Token string `json:"token"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
