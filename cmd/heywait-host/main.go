package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1000nettles/heywait/game"
	"github.com/1000nettles/heywait/hostlink"
	"github.com/1000nettles/heywait/scene"
	"github.com/1000nettles/heywait/settings"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address for the websocket host link")
	sceneName := flag.String("scene", "default", "scene name in scenes/ (basename, .yaml optional)")
	settingsPath := flag.String("settings", "", "settings YAML file (defaults when empty)")
	flag.Parse()

	s, err := settings.Load(*settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	sc, err := scene.LoadScene(*sceneName)
	if err != nil {
		log.Fatal(err)
	}

	engine := game.New(s, scene.LoadScript)
	if err := engine.LoadScene(sc); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := scene.NewWatcher(scene.WatchDirs()...)
	if err != nil {
		log.Printf("scene watcher disabled: %v", err)
	} else {
		defer watcher.Close()
		go reloadOnChange(ctx, engine, watcher, *sceneName)
	}

	srv := hostlink.NewServer(engine, hostlink.Config{Logger: log.Default()})
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		log.Fatal(err)
	}
}

// reloadOnChange recompiles edited scripts. Scene edits are left alone while
// the host link is live: the host owns token positions and zone state.
func reloadOnChange(ctx context.Context, engine *game.Engine, watcher *scene.Watcher, sceneName string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-watcher.Events:
			if !ok {
				return
			}
			if scene.IsScriptFile(path) {
				engine.InvalidateScript(scene.SceneName(path))
				log.Printf("reloaded script %s", path)
				continue
			}
			if scene.SceneName(path) == scene.SceneName(sceneName) {
				log.Printf("scene %s changed on disk; restart to apply", sceneName)
			}
		}
	}
}
