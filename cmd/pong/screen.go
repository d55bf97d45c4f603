package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"pong/game"
	"pong/protocol"
)

// keys maps the watched keys to the codes the input layer understands.
var keys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyW, "KeyW"},
	{ebiten.KeyS, "KeyS"},
	{ebiten.KeyArrowUp, "ArrowUp"},
	{ebiten.KeyArrowDown, "ArrowDown"},
	{ebiten.KeySpace, "Space"},
}

var (
	background = color.RGBA{0x10, 0x10, 0x18, 0xff}
	ballColor  = color.RGBA{0xff, 0xd7, 0x00, 0xff}
)

type screen struct {
	ctrl controller
	face text.Face
}

func newScreen(ctrl controller) *screen {
	return &screen{ctrl: ctrl, face: text.NewGoXFace(basicfont.Face7x13)}
}

func (s *screen) Update() error {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			if err := s.ctrl.Key(k.code, true); err != nil {
				slog.Warn("send key", "key", k.code, "err", err)
			}
		}
		if inpututil.IsKeyJustReleased(k.key) {
			if err := s.ctrl.Key(k.code, false); err != nil {
				slog.Warn("send key", "key", k.code, "err", err)
			}
		}
	}
	return nil
}

func (s *screen) Draw(dst *ebiten.Image) {
	dst.Fill(background)
	f, ok := s.ctrl.Frame()
	if !ok {
		s.print(dst, "connecting...", 250, 290)
		return
	}

	vector.FillRect(dst, game.Pad1X, float32(f.Pad1Y), game.PaddleWidth, game.PaddleHeight, color.White, false)
	vector.FillRect(dst, game.Pad2X, float32(f.Pad2Y), game.PaddleWidth, game.PaddleHeight, color.White, false)
	vector.FillCircle(dst, float32(f.BallX), float32(f.BallY), game.BallRadius, ballColor, true)

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("tick %d  %s  %.0f fps", f.Tick, f.Direction, ebiten.ActualFPS()), 4, 580)
	s.print(dst, fmt.Sprint(f.Score2), 150, 40)
	s.print(dst, fmt.Sprint(f.Score1), 450, 40)

	if f.GameOver {
		s.print(dst, "Game Over", 160, 300)
		s.print(dst, winnerText(f), 210, 340)
		s.print(dst, "Press 'Spacebar' to play again", 160, 380)
	}
}

func (s *screen) print(dst *ebiten.Image, msg string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	text.Draw(dst, msg, s.face, op)
}

func winnerText(f protocol.State) string {
	if f.Winner == "player" {
		return "You Win!"
	}
	return "Opponent Wins"
}

func (s *screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(game.ArenaSize), int(game.ArenaSize)
}
