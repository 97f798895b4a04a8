package overlay

import (
	"fmt"

	"chess-move-overlay/annotation"
	"chess-move-overlay/config"
)

// Frame is the fully resolved render model for one overlay showing: the
// annotation filtered through the current config, with display toggles
// already applied. Renderers draw a Frame verbatim; an omitted section is
// an empty string.
type Frame struct {
	Label annotation.Label

	// Text content. Empty string = section omitted.
	Title             string // localized quality label, e.g. "BLUNDER!!"
	BestMoveTitle     string
	BestMove          string
	OpponentBestTitle string
	OpponentBest      string
	Evaluation        string // formatted pawns, e.g. "-7.50"
	Depth             string // e.g. "d20"

	// Appearance, copied from config at build time so a later config
	// edit cannot change a frame already on screen.
	IconKey        string // asset key, equal to the label value
	IconSize       int
	FontSize       int
	Width          int
	Height         int
	Opacity        float64
	AnimationSpeed float64
	Theme          string
	BlurBackground bool
	AlwaysOnTop    bool
}

// BuildFrame resolves an annotation against a config snapshot.
func BuildFrame(a annotation.MoveAnnotation, cfg config.Config) Frame {
	f := Frame{
		Label:          a.Label,
		Title:          cfg.LabelFor(string(a.Label)),
		IconKey:        string(a.Label),
		IconSize:       cfg.IconSize,
		FontSize:       cfg.FontSize,
		Width:          cfg.OverlayWidth,
		Height:         cfg.OverlayHeight,
		Opacity:        cfg.Opacity,
		AnimationSpeed: cfg.AnimationSpeed,
		Theme:          cfg.Theme,
		BlurBackground: cfg.BlurBackground,
		AlwaysOnTop:    cfg.AlwaysOnTop,
	}
	if cfg.ShowBestMove && a.BestMove != "" {
		f.BestMoveTitle = cfg.LabelFor("engine_suggests")
		f.BestMove = a.BestMove
	}
	if cfg.ShowOpponentBest && a.OpponentBestMove != "" {
		f.OpponentBestTitle = cfg.LabelFor("opponent_best")
		f.OpponentBest = a.OpponentBestMove
	}
	if cfg.ShowEvaluation && a.Evaluation != nil {
		f.Evaluation = FormatEvaluation(*a.Evaluation)
	}
	if a.Depth != nil {
		f.Depth = fmt.Sprintf("d%d", *a.Depth)
	}
	return f
}

// FormatEvaluation renders centipawns the way chess UIs do: signed pawn
// units with two decimals.
func FormatEvaluation(cp int) string {
	return fmt.Sprintf("%+.2f", float64(cp)/100)
}
