// Package easyplot provides the public API for embedding interactive 2D
// function plots described by Lua scene scripts.
//
// # Basic Usage
//
//	p, err := easyplot.New("parabola.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Stop()
//
//	if err := p.Start(); err != nil {
//		log.Fatal(err)
//	}
//	<-p.Done()
//
// A scene script builds the plot through the global plot table:
//
//	plot.config = { title = "parabola", scale = 0.5 }
//	plot.grid{}
//	plot.curve{ fn = function(x) return x * x end, hover = true }
//	plot.mark{ x = 1, y = 1, movable = true, on_curve = function(x) return x * x end }
//
// # Scene Sources
//
//   - Disk file: Use [New] to load from a filesystem path
//   - Embedded FS: Use [NewFromFS] to load from an [io/fs.FS]
//   - io.Reader: Use [NewFromReader] for generated scenes
//
// # Reloading
//
// [Plot.Reload] runs the script again and swaps the new primitives in
// without closing the window. The pan and zoom survive unless the new script
// sets a different scale or center. With [Options.WatchScene] the reload
// happens whenever the scene file changes.
//
// # Error Handling
//
// Runtime errors are reported through [ErrorHandler] as [*CategorizedError]
// values and kept by the instance's [ErrorTracker]. A plotted function that
// fails leaves a gap in its curve and is reported once per render pass with
// [SeverityWarning]; it never stops the plot.
//
// # Headless Mode
//
// With [Options.Headless] the plot renders into an offscreen image instead
// of a window. [Plot.Snapshot] writes a PNG of the scene in either mode.
package easyplot
