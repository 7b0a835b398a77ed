// Package render turns session state into the console text the player sees.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/i5heu/TetrisStack/internal/config"
	"github.com/i5heu/TetrisStack/internal/game"
	"github.com/i5heu/TetrisStack/pkg/piece"
)

const emptyMarker = "[ VAZIA ]"

// Renderer formats queues, stacks, menus and action results.
type Renderer struct {
	styles Styles
}

func New(color bool) *Renderer {
	return &Renderer{styles: NewStyles(color)}
}

func (r *Renderer) pieces(ps []piece.Piece) string {
	if len(ps) == 0 {
		return r.styles.Empty.Render(emptyMarker)
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = r.styles.piece(p.Symbol).Render(p.String())
	}
	return strings.Join(parts, " ")
}

// Queue renders pieces front to back.
func (r *Renderer) Queue(ps []piece.Piece) string {
	return r.styles.Label.Render("Fila de peças:") + " " + r.pieces(ps)
}

// Stack renders pieces top to base.
func (r *Renderer) Stack(ps []piece.Piece) string {
	return r.styles.Label.Render("Pilha de reserva (Topo -> Base):") + " " + r.pieces(ps)
}

// State renders everything the mode shows between turns.
func (r *Renderer) State(s *game.Session) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Estado atual:"))
	b.WriteString("\n\n")
	b.WriteString(r.Queue(s.Queue()))
	b.WriteString("\n")
	if s.Mode() != config.ModeQueue {
		b.WriteString(r.Stack(s.Stack()))
		b.WriteString("\n")
	}
	return b.String()
}

func label(a game.Action, mode string, batch int) string {
	switch a {
	case game.ActionPlay:
		if mode == config.ModeQueue {
			return "Jogar peça (dequeue)"
		}
		return "Jogar peça da frente da fila"
	case game.ActionInsert:
		return "Inserir nova peça (enqueue)"
	case game.ActionReserve:
		return "Enviar peça da fila para a pilha de reserva"
	case game.ActionUseReserved:
		return "Usar peça da pilha de reserva"
	case game.ActionSwapOne:
		return "Trocar peça da frente da fila com o topo da pilha"
	case game.ActionSwapBatch:
		return fmt.Sprintf("Trocar os %d primeiros da fila com as %d peças da pilha", batch, batch)
	case game.ActionExit:
		return "Sair"
	}
	return a.String()
}

// Menu renders the action table for mode.
func (r *Renderer) Menu(mode string, batch int) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Opções de ação:"))
	b.WriteString("\n")
	b.WriteString("Código  Ação\n")
	for _, e := range game.Menu(mode) {
		fmt.Fprintf(&b, "  %s     %s\n", r.styles.Code.Render(fmt.Sprint(e.Code)), label(e.Action, mode, batch))
	}
	return b.String()
}

// Outcome renders the confirmation line for a successful action.
func (r *Renderer) Outcome(out game.Outcome) string {
	var msg string
	switch out.Action {
	case game.ActionPlay:
		msg = "Peça jogada: " + out.Piece.String()
	case game.ActionInsert:
		msg = "Nova peça inserida: " + out.Piece.String()
	case game.ActionReserve:
		msg = "Peça reservada: " + out.Piece.String()
	case game.ActionUseReserved:
		msg = "Peça usada da reserva: " + out.Piece.String()
	case game.ActionSwapOne:
		msg = "Troca realizada entre a frente da fila e o topo da pilha."
	case game.ActionSwapBatch:
		msg = fmt.Sprintf("Troca realizada entre as %d primeiras peças da fila e as %d da pilha.", out.Swapped, out.Swapped)
	default:
		msg = out.Action.String()
	}
	if out.Refilled {
		msg += " | Nova peça na fila: " + out.Refill.String()
	}
	return r.styles.Success.Render("-> Ação: " + msg)
}

// Failure renders the message shown when an action is rejected.
func (r *Renderer) Failure(err error) string {
	var msg string
	switch {
	case errors.Is(err, game.ErrQueueEmpty):
		msg = "Fila está vazia! Nenhuma peça para jogar."
	case errors.Is(err, game.ErrQueueFull):
		msg = "Fila está cheia! Jogue uma peça antes de adicionar."
	case errors.Is(err, game.ErrStackFull):
		msg = "Pilha de reserva está cheia! Use uma peça reservada antes."
	case errors.Is(err, game.ErrStackEmpty):
		msg = "Pilha de reserva está vazia! Nenhuma peça para usar."
	case errors.Is(err, game.ErrInsufficientElements):
		msg = "Peças insuficientes na fila ou na pilha para a troca."
	case errors.Is(err, game.ErrInvalidAction):
		msg = "Opção inválida! Tente novamente."
	default:
		msg = err.Error()
	}
	return r.styles.Failure.Render("-> Ação: " + msg)
}
