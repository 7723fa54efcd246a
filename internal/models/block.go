package models

import (
	"fmt"
	"strings"
)

// BlockType tags what a time block represents.
type BlockType int

const (
	BlockActivity BlockType = iota
	BlockCompulsory
	BlockBreak
)

// BlockTypes lists every block type in display order.
var BlockTypes = []BlockType{BlockActivity, BlockCompulsory, BlockBreak}

func (t BlockType) String() string {
	switch t {
	case BlockActivity:
		return "ACTIVITY"
	case BlockCompulsory:
		return "COMPULSORY"
	case BlockBreak:
		return "BREAK"
	default:
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
}

// Valid reports whether t is one of the known block types.
func (t BlockType) Valid() bool {
	switch t {
	case BlockActivity, BlockCompulsory, BlockBreak:
		return true
	default:
		return false
	}
}

// Color is the display colour of the block type as a hex RGB string.
func (t BlockType) Color() string {
	switch t {
	case BlockActivity:
		return "#1f77b4"
	case BlockCompulsory:
		return "#d62728"
	case BlockBreak:
		return "#9e9e9e"
	default:
		return "#000000"
	}
}

// ParseBlockType parses a block type tag, case-insensitively.
func ParseBlockType(s string) (BlockType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVITY":
		return BlockActivity, nil
	case "COMPULSORY":
		return BlockCompulsory, nil
	case "BREAK":
		return BlockBreak, nil
	default:
		return 0, fmt.Errorf("invalid block type: %q (expected ACTIVITY, COMPULSORY or BREAK)", s)
	}
}

func (t BlockType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid block type: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *BlockType) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeBlock is one scheduled interval on a day. Start and End are HH:MM
// and the block covers the half-open interval [Start, End).
type TimeBlock struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Name  string    `json:"name"`
	Type  BlockType `json:"type"`
}

// ScheduledBlock is a TimeBlock together with the day it sits on. It is the
// persisted and wire form of a block.
type ScheduledBlock struct {
	Day Day `json:"day"`
	TimeBlock
}
