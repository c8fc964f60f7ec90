// Package layout provides the serialization format for computed tag-cloud
// layouts.
//
// This package defines the canonical JSON format exchanged between the
// `layout` and `visualize` commands and emitted by the JSON sink. It sits at
// the boundary between the engine's in-memory state ([]image.Rectangle owned
// by a cloud.Layouter) and files on disk.
//
// # Format
//
//	{
//	  "width": 500,
//	  "height": 500,
//	  "center": {"x": 250, "y": 250},
//	  "rectangles": [
//	    {"x": 225, "y": 230, "width": 50, "height": 40}
//	  ]
//	}
//
// # Usage
//
//	l := layout.FromRectangles(center, rects)
//	if err := layout.WriteFile(l, "cloud.layout.json"); err != nil {
//	    return err
//	}
//
//	l, err := layout.ReadFile("cloud.layout.json")
//	rects := l.Rects()
//
// A layout file is an output artifact. It is never loaded back into a
// layouter to continue placing rectangles.
package layout
