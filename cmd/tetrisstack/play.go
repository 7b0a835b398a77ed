package main

import (
	"fmt"
	"io"

	"github.com/i5heu/TetrisStack/internal/game"
	"github.com/i5heu/TetrisStack/internal/render"
)

// play runs the menu loop until the chooser picks exit or input ends.
func play(w io.Writer, s *game.Session, chooser game.ActionChooser, r *render.Renderer) error {
	fmt.Fprintf(w, "Inicializando a fila com %d peças...\n", s.QueueCapacity())
	for {
		fmt.Fprintln(w, "\n-------------------------------------")
		fmt.Fprint(w, r.State(s))
		fmt.Fprintln(w)
		fmt.Fprint(w, r.Menu(s.Mode(), s.BatchSize()))
		fmt.Fprint(w, "Escolha sua ação: ")

		a, err := chooser.ChooseAction()
		if err != nil {
			return err
		}
		if a == game.ActionExit {
			fmt.Fprintln(w, "\n\nSaindo do Tetris Stack...")
			return nil
		}

		out, err := s.Do(a)
		if err != nil {
			fmt.Fprintln(w, "\n\n"+r.Failure(err))
			continue
		}
		fmt.Fprintln(w, "\n\n"+r.Outcome(out))
	}
}
