/*
Package sketch is a paint canvas with a bounded, persistent undo/redo history.

Every finished change of the drawing (a stroke, a clear or an imported image)
is captured as a PNG snapshot and committed to a linear timeline. Undo and redo
move a cursor over the timeline; committing after an undo drops the redo branch,
and the oldest snapshot is evicted once the bound is reached. The timeline can be
kept across sessions with a Persister.

The package comes with a command line interface and a paint window.
To check the supported commands type:

	$ sketch --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"
		"os"

		"github.com/esimov/sketch"
		"github.com/esimov/sketch/store"
	)

	func main() {
		db, err := store.OpenSQLite("sketch.db")
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		p := sketch.NewPainter(sketch.NewCanvas(800, 600),
			sketch.WithStatePersister(sketch.NewStorePersister(db, "", nil)),
		)
		p.Start()

		p.SetTool(sketch.Circle)
		p.Stroke(sketch.Pt(400, 300), sketch.Pt(450, 300))
		p.Undo()

		if err := p.Export(os.Stdout, "png"); err != nil {
			log.Fatal(err)
		}
	}
*/
package sketch
