//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"

	"case-knowledge-be/pkg/chunker"
)

// Dev helper: chunk a local file and print the resulting hierarchy so
// chunk boundaries can be eyeballed without running the full pipeline.
//
//	go run scripts/preview_chunks.go path/to/file.txt
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: go run scripts/preview_chunks.go <file>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read file: %v", err)
	}

	spans := chunker.Chunk(string(data), chunker.DefaultConfig())
	fmt.Printf("--- %d spans ---\n", len(spans))

	for _, s := range spans {
		indent := ""
		if s.ChunkType == chunker.TypeChild {
			indent = "    "
		}
		meta := ""
		if s.PageNumber != nil {
			meta += fmt.Sprintf(" page=%d", *s.PageNumber)
		}
		if s.SectionHeading != nil {
			meta += fmt.Sprintf(" heading=%q", *s.SectionHeading)
		}
		preview := s.Content
		if len(preview) > 60 {
			preview = preview[:60] + "..."
		}
		fmt.Printf("%s[%d] %s chars=%d..%d%s  %q\n",
			indent, s.ChunkIndex, s.ChunkType, s.CharStart, s.CharEnd, meta, preview)
	}
}
