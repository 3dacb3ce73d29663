package main

import (
	"fmt"
	"log"
	"os"

	"github.com/marlendd/News-Aggregator/pkg/config"
)

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := config.WriteSchema(outputPath); err != nil {
		log.Fatalf("failed to generate schema: %v", err)
	}

	fmt.Printf("Schema generated successfully at %s\n", outputPath)
}
