package models

// SubmitResult is the outcome of an answer submission.
type SubmitResult struct {
	Correct       bool   `json:"correct"`
	ScoreChange   int    `json:"score_change"`
	Message       string `json:"message"`
	PhaseChanged  bool   `json:"phase_changed"`
	GameCompleted bool   `json:"game_completed"`
}

// ActionResult is the outcome of a reveal or skip.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GiveUpResult discloses the full puzzle after a give-up.
type GiveUpResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	AllWords []string `json:"all_words"`
	Theme    string   `json:"theme"`
}

// GameState is the presentation view of a game.
type GameState struct {
	GameID            string   `json:"game_id"`
	Phase             int      `json:"phase"`
	WordNumber        int      `json:"word_number"`
	Score             int      `json:"score"`
	Reveals           int      `json:"reveals"`
	Blanks            string   `json:"blanks"`
	Clue              string   `json:"clue"`
	SolvedWords       []string `json:"solved_words"`
	SolvedWordIndices []int    `json:"solved_word_indices"`
	IsActive          bool     `json:"is_active"`
	IsBonus           bool     `json:"is_bonus"`
	LastMessage       string   `json:"last_message,omitempty"`
	ThemeRevealed     string   `json:"theme_revealed,omitempty"`
}

// ActionResponse is the envelope returned by every session and game action.
type ActionResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	GameState *GameState `json:"game_state"`
}
