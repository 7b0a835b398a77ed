package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/TetrisStack/internal/config"
	"github.com/i5heu/TetrisStack/internal/game"
	"github.com/i5heu/TetrisStack/internal/render"
	"github.com/i5heu/TetrisStack/pkg/piece"
)

// runCLI executes the root command with the given stdin and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"TETRIS_MODE", "TETRIS_SEED", "TETRIS_ALPHABET", "TETRIS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "tetrisstack.yaml"),
		"--log-file", filepath.Join(dir, "tetrisstack.log"),
		"--no-color",
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPlayQueueMode(t *testing.T) {
	out, err := runCLI(t, "2\n1\n2\n0\n", "--mode", "queue", "--seed", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Inicializando a fila com 5 peças...")
	assert.Contains(t, out, "Fila está cheia! Jogue uma peça antes de adicionar.")
	assert.Regexp(t, `Peça jogada: \[[IOTL] 0\]`, out)
	assert.Regexp(t, `Nova peça inserida: \[[IOTL] 5\]`, out)
	assert.Contains(t, out, "Saindo do Tetris Stack...")
	assert.NotContains(t, out, "Pilha de reserva")
}

func TestPlayStrategicMode(t *testing.T) {
	out, err := runCLI(t, "2\n2\n2\n5\n4\n3\n9\nxyz\n", "--mode", "strategic", "--seed", "11", "--alphabet", "IOTLSZJ")
	require.NoError(t, err)

	assert.Regexp(t, `Peça reservada: \[[IOTLSZJ] 2\] \| Nova peça na fila: \[[IOTLSZJ] 7\]`, out)
	assert.Contains(t, out, "Troca realizada entre as 3 primeiras peças da fila e as 3 da pilha.")
	assert.Contains(t, out, "Troca realizada entre a frente da fila e o topo da pilha.")
	assert.Contains(t, out, "Peça usada da reserva:")
	assert.Equal(t, 2, strings.Count(out, "Opção inválida!"))
	assert.Contains(t, out, "Saindo do Tetris Stack...", "end of input exits cleanly")
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := runCLI(t, "", "--mode", "arcade")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	_, err := runCLI(t, "", "init-config", "--config", path, "--mode", "reserve")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: reserve")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.ModeReserve, cfg.Mode)
}

func TestPlayLoopWithScriptedChooser(t *testing.T) {
	s := game.New(game.Options{Mode: config.ModeReserve, Source: piece.NewSequenceSource("O", 0)})
	var out bytes.Buffer
	err := play(&out, s, game.NewScriptedChooser(game.ActionUseReserved, game.ActionReserve, game.ActionUseReserved), render.New(false))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Pilha de reserva está vazia!")
	assert.Contains(t, text, "Peça reservada: [O 0] | Nova peça na fila: [O 5]")
	assert.Contains(t, text, "Peça usada da reserva: [O 0]")
	assert.Contains(t, text, "Fila de peças: [O 1] [O 2] [O 3] [O 4] [O 5]")
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := newLogger(config.LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
}
