package web

// Compact protocol: single-char "t" field for message type.
const (
	// Server -> browser
	MsgWelcome  = "w"
	MsgFrame    = "f"
	MsgGameOver = "o"
	MsgRanked   = "r"
	MsgShutdown = "x"
	MsgError    = "e"

	// Browser -> server
	MsgStart = "s"
	MsgClick = "c"
)

// WelcomeMsg tells the browser its identity and the playfield size.
type WelcomeMsg struct {
	Type   string  `json:"t"`
	ID     string  `json:"id"`
	Name   string  `json:"n"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// FrameMsg carries one tick's display list and HUD values.
type FrameMsg struct {
	Type    string `json:"t"`
	State   string `json:"st"`
	Score   int    `json:"s"`
	High    int    `json:"hi"`
	Players int    `json:"p"`
	Ops     []Op   `json:"ops"`
}

// LeaderEntry is one leaderboard row.
type LeaderEntry struct {
	Name  string `json:"n"`
	Score int    `json:"s"`
}

// GameOverMsg is sent once when the player's game ends.
type GameOverMsg struct {
	Type  string        `json:"t"`
	Score int           `json:"s"`
	High  int           `json:"hi"`
	Top   []LeaderEntry `json:"top"`
}

// RankedMsg follows a game over when the result made the leaderboard.
type RankedMsg struct {
	Type string        `json:"t"`
	Rank int           `json:"rk"`
	Top  []LeaderEntry `json:"top"`
}

// ShutdownMsg announces that the server is going away.
type ShutdownMsg struct {
	Type    string  `json:"t"`
	Seconds float64 `json:"sec"`
}

// ErrorMsg reports a fatal problem before the socket is closed.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// ClientMessage is anything the browser sends. X and Y are playfield coordinates.
type ClientMessage struct {
	Type string  `json:"t"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
