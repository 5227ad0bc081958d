package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"murasaki/internal/config"
	"murasaki/internal/drone"
	"murasaki/internal/landmark"
	"murasaki/internal/rng"
	"murasaki/internal/technique"
	"murasaki/internal/visual"
)

func RunDesktop() {
	runtime.LockOSThread()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v (keeping defaults)\n", err)
	}
	lf := cfg.NewLoggerFactory()
	log := lf.NewLogger("app")

	window, err := visual.OpenWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	rend, err := visual.NewRenderer(cfg.Particles)
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Audio: the graph is built and the device opened on the first press.
	engine := drone.New(drone.Options{
		Sink:            newSink(cfg),
		ReverbPartition: cfg.ReverbPartition,
	}, lf)
	defer func() {
		if err := engine.Close(); err != nil {
			log.Warnf("audio close: %v", err)
		}
	}()
	go engine.RunHumanizer(ctx)
	unlock := newUnlocker(func(ctx context.Context) (bool, error) {
		if err := engine.EnsureGraph(); err != nil {
			return false, err
		}
		return engine.Unlock(ctx)
	}, log)

	r := rng.New()
	targets := technique.NewTargets(cfg.Particles)
	ctrl := technique.NewController(engine, targets, r, lf)
	scene := visual.NewScene(targets, r)

	frames := make(chan landmark.Frame, 1)
	src, keyboard := newSource(cfg, lf)
	go func() {
		if err := src.Run(ctx, frames); err != nil && !errors.Is(err, context.Canceled) {
			log.Warnf("landmark source stopped: %v", err)
		}
	}()

	input := visual.NewInput(window)
	var hands []technique.Hand
	showSkeleton := true
	title := ""

	for !window.ShouldClose() {
		glfw.PollEvents()
		if input.JustPressed(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyV) {
			showSkeleton = !showSkeleton
		}

		keys, clicked := input.Drain()
		if keyboard != nil {
			for _, k := range keys {
				if d, ok := visual.DigitRune(k); ok {
					keyboard.Press(d)
				}
			}
		}
		if len(keys) > 0 || clicked {
			unlock.Trigger(ctx)
		}
		unlock.Poll()

	drain:
		for {
			select {
			case f := <-frames:
				hands = f.Hands
				ctrl.Update(technique.ClassifyFrame(hands))
			default:
				break drain
			}
		}

		scene.Step(ctrl.Label(), ctrl.Shake())

		winW, winH := window.GetSize()
		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 || winW <= 0 || winH <= 0 {
			continue
		}
		pres := ctrl.Presentation()
		cam := visual.CameraFor(winW, winH)
		sx := float64(fbW) / float64(winW)
		sy := float64(fbH) / float64(winH)
		surf := visual.SurfaceFor(fbW, fbH).Shaken(scene.ShakeX*sx, scene.ShakeY*sy)

		rend.BeginFrame(fbW, fbH)
		rend.DrawCloud(scene, cam, surf, pres)
		if showSkeleton {
			rend.DrawSkeleton(hands, pres.Glow, fbW, fbH)
		}

		if t := visual.StatusTitle(pres.Name, engine.Status().Hint); t != title {
			window.SetTitle(t)
			title = t
		}
		window.SwapBuffers()
	}
}
