package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jlkiri/snake-game/pkg/remote"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "game server websocket endpoint")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := remote.Dial(ctx, *url)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "snake-remote:", err)
		os.Exit(1)
	}
	defer client.Close()

	final, err := tea.NewProgram(remote.NewModel(client), tea.WithAltScreen()).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "snake-remote:", err)
		os.Exit(1)
	}
	if m, ok := final.(remote.Model); ok && m.Err() != nil {
		fmt.Fprintln(os.Stderr, "snake-remote: connection lost:", m.Err())
		os.Exit(1)
	}
}
