//go:build js

package main

import (
	"fmt"
	"strconv"

	"github.com/mokiat/gog/opt"
	"go.uber.org/zap"

	"github.com/nobonobo/jeep-diorama/diorama"
	"github.com/nobonobo/jeep-diorama/host/three"
	"github.com/nobonobo/jeep-diorama/schema"
)

func runApplication(log *zap.Logger) error {
	manifest := schema.DefaultManifest()
	if err := three.FetchJSON(schema.ManifestFile, &manifest); err != nil {
		log.Warn("Using built-in manifest", zap.Error(err))
		manifest = schema.DefaultManifest()
	}

	query := three.QueryParams()
	params := manifest.Params
	if err := params.Override(query); err != nil {
		log.Warn("Ignoring URL parameters", zap.Error(err))
	} else {
		manifest.Params = params
	}
	var maxPixelRatio opt.T[float64]
	if value := query.Get("maxPixelRatio"); value != "" {
		ratio, err := strconv.ParseFloat(value, 64)
		if err != nil {
			log.Warn("Ignoring maxPixelRatio", zap.String("value", value), zap.Error(err))
		} else {
			maxPixelRatio = opt.V(ratio)
		}
	}

	canvas, err := three.Canvas("canvas.webgl")
	if err != nil {
		return fmt.Errorf("failed to find canvas: %w", err)
	}
	renderer := three.NewRenderer(canvas)
	app, err := diorama.NewApplication(diorama.Options{
		Manifest:      manifest,
		Viewport:      three.CurrentViewport(),
		Renderer:      renderer,
		Loader:        three.NewLoader(renderer, log),
		Logger:        log,
		MaxPixelRatio: maxPixelRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	three.NewPanel(app.Panel(), log)
	three.BindInput(canvas, app)

	app.Start()
	renderer.SetAnimationLoop(app.Frame)
	select {}
}
