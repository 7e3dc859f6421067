package ai

import (
	"encoding/json"
	"fmt"

	"github.com/doeshing/jarvis-go/internal/ports"
)

const textTemplate = `# %[1]s

## Introduction
This document provides information about %[1]s.

## Overview
%[1]s is an important subject that deserves a detailed explanation.

## Key Points
* Point 1 about %[1]s
* Point 2 about %[1]s
* Point 3 about %[1]s

## Conclusion
In conclusion, %[1]s is a valuable topic for further study.
`

const codeTemplate = `#!/usr/bin/env python3
"""
%[1]s - generated by JARVIS
"""


def main():
    """Entry point for %[1]s."""
    print("Hello from %[1]s!")


if __name__ == "__main__":
    main()
`

// TableData is the structure spreadsheet content is expected to decode into.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// templateContent renders the offline fallback for kind.
func templateContent(topic string, kind ports.ContentKind) string {
	switch kind {
	case ports.ContentCode:
		return fmt.Sprintf(codeTemplate, topic)
	case ports.ContentJSON:
		table := TableData{
			Headers: []string{"Item", "Description", "Value"},
			Rows: [][]string{
				{topic + " Item 1", "Description 1", "Value 1"},
				{topic + " Item 2", "Description 2", "Value 2"},
				{topic + " Item 3", "Description 3", "Value 3"},
			},
		}
		data, _ := json.MarshalIndent(table, "", "  ")
		return string(data)
	default:
		return fmt.Sprintf(textTemplate, topic)
	}
}
