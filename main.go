package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1000nettles/heywait/common"
)

func main() {
	debug := flag.Bool("debug", false, "show zone ids, images and camera events")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", "default", "scene name in scenes/ (basename, .yaml optional)")
	settingsPath := flag.String("settings", "", "settings YAML file (defaults when empty)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Hey, Wait!")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*sceneName, *settingsPath, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
