package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i5heu/TetrisStack/internal/config"
	"github.com/i5heu/TetrisStack/internal/game"
	"github.com/i5heu/TetrisStack/pkg/piece"
)

func TestQueueAndStack(t *testing.T) {
	r := New(false)
	ps := []piece.Piece{{Symbol: 'I', ID: 0}, {Symbol: 'O', ID: 1}}

	assert.Equal(t, "Fila de peças: [I 0] [O 1]", r.Queue(ps))
	assert.Equal(t, "Fila de peças: [ VAZIA ]", r.Queue(nil))
	assert.Equal(t, "Pilha de reserva (Topo -> Base): [ VAZIA ]", r.Stack(nil))
}

func TestStateHidesStackInQueueMode(t *testing.T) {
	r := New(false)
	s := game.New(game.Options{Mode: config.ModeQueue, Source: piece.NewSequenceSource("T", 0)})
	out := r.State(s)
	assert.Contains(t, out, "[T 0] [T 1] [T 2] [T 3] [T 4]")
	assert.NotContains(t, out, "Pilha")

	s = game.New(game.Options{Mode: config.ModeReserve, Source: piece.NewSequenceSource("T", 0)})
	assert.Contains(t, r.State(s), "Pilha de reserva (Topo -> Base): [ VAZIA ]")
}

func TestMenu(t *testing.T) {
	r := New(false)

	m := r.Menu(config.ModeQueue, 3)
	assert.Contains(t, m, "  1     Jogar peça (dequeue)")
	assert.Contains(t, m, "  2     Inserir nova peça (enqueue)")
	assert.Contains(t, m, "  0     Sair")

	m = r.Menu(config.ModeStrategic, 3)
	assert.Contains(t, m, "  5     Trocar os 3 primeiros da fila com as 3 peças da pilha")
	assert.Equal(t, 6, strings.Count(m, "\n  "), "five actions plus exit")
}

func TestOutcome(t *testing.T) {
	r := New(false)
	out := game.Outcome{
		Action:   game.ActionPlay,
		Piece:    piece.Piece{Symbol: 'L', ID: 3},
		Refill:   piece.Piece{Symbol: 'O', ID: 9},
		Refilled: true,
	}
	assert.Equal(t, "-> Ação: Peça jogada: [L 3] | Nova peça na fila: [O 9]", r.Outcome(out))
}

func TestFailure(t *testing.T) {
	r := New(false)
	tests := []struct {
		err  error
		want string
	}{
		{game.ErrQueueEmpty, "Fila está vazia!"},
		{game.ErrQueueFull, "Fila está cheia!"},
		{game.ErrStackFull, "Pilha de reserva está cheia!"},
		{game.ErrStackEmpty, "Pilha de reserva está vazia!"},
		{fmt.Errorf("%w: detail", game.ErrInsufficientElements), "Peças insuficientes"},
		{fmt.Errorf("%w: detail", game.ErrInvalidAction), "Opção inválida!"},
		{fmt.Errorf("something else"), "something else"},
	}
	for _, tt := range tests {
		assert.Contains(t, r.Failure(tt.err), tt.want)
	}
}

func TestColorStylesRenderPieces(t *testing.T) {
	r := New(true)
	got := r.Queue([]piece.Piece{{Symbol: 'I', ID: 0}})
	assert.Contains(t, got, "[I 0]")
}
