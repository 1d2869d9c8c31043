package term

// Hud holds the text overlays. It implements the score and game-over
// displays the session reports to.
type Hud struct {
	score      string
	gameOver   bool
	finalScore string
	scoreDraws int
}

func NewHud() *Hud {
	return &Hud{score: "00000"}
}

func (h *Hud) ShowScore(text string) {
	h.score = text
	h.scoreDraws++
}

func (h *Hud) ShowGameOver(score string) {
	h.gameOver = true
	h.finalScore = score
}

// Reset prepares the HUD for a new run.
func (h *Hud) Reset() {
	*h = Hud{score: "00000"}
}

func (h *Hud) Score() string      { return h.score }
func (h *Hud) GameOver() bool     { return h.gameOver }
func (h *Hud) FinalScore() string { return h.finalScore }

// ScoreUpdates counts how many times the score text was pushed.
func (h *Hud) ScoreUpdates() int { return h.scoreDraws }
