// Command ingestcheck runs image files through the ingestion pipeline
// without the GUI and reports what would land on the canvas.
//
// Usage: ingestcheck file.png file.jpg ...
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"pastepad/internal/ingest"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <image-file>...\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	dec := &ingest.Decoder{}
	var blobs []ingest.NamedBlob
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			blobs = append(blobs, ingest.NamedBlob{Name: path})
			continue
		}
		blobs = append(blobs, ingest.NamedBlob{Name: path, Data: data})
	}

	res := dec.Batch(blobs)
	for _, item := range res.Items {
		fmt.Printf("%dx%d natural -> %dx%d on canvas, %d bytes png\n",
			item.NaturalWidth, item.NaturalHeight, item.W, item.H, len(item.PNG))
	}
	fmt.Printf("%d added, %d failed\n", len(res.Items), res.Failed)

	if res.Failed > 0 && len(res.Items) == 0 {
		os.Exit(1)
	}
}
