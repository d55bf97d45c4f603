package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"pong/config"
	"pong/game"
)

func main() {
	cfgPath := flag.String("config", "", "TOML config file (defaults to $PONG_CONFIG)")
	connect := flag.String("connect", "", "play on a server, e.g. ws://localhost:8080/ws")
	roomCode := flag.String("room", "", "room code to join on the server")
	watch := flag.Bool("watch", false, "spectate the room instead of driving it")
	flag.Parse()

	if err := config.InitConfig(); err != nil {
		slog.Error("init config", "err", err)
		os.Exit(1)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	var ctrl controller
	if *connect != "" {
		ctrl, err = dialRemote(*connect, *roomCode, cfg.Codec, *watch)
	} else {
		ctrl, err = startLocal(cfg)
	}
	if err != nil {
		slog.Error("start game", "err", err)
		os.Exit(1)
	}
	defer ctrl.Close()

	ebiten.SetWindowSize(int(game.ArenaSize), int(game.ArenaSize))
	ebiten.SetWindowTitle("Pong")
	if err := ebiten.RunGame(newScreen(ctrl)); err != nil {
		slog.Error("error to run game", "err", err)
	}
}
