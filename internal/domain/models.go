package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ResourceName identifies which retrieval a result or failure belongs to.
type ResourceName string

const (
	ResourceUser  ResourceName = "user"
	ResourcePosts ResourceName = "posts"
	ResourceTodos ResourceName = "todos"
)

// Known reports whether the name is one of the dashboard's logical resources.
func (n ResourceName) Known() bool {
	switch n {
	case ResourceUser, ResourcePosts, ResourceTodos:
		return true
	}
	return false
}

// Shape is the structure a payload must decode to: a single JSON object or an array.
type Shape string

const (
	ShapeRecord Shape = "record"
	ShapeList   Shape = "list"
)

type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSequential:
		return ModeSequential, nil
	case ModeParallel:
		return ModeParallel, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeSequential, ModeParallel)
}

// ResourceRequest names one remote resource. Path is relative to the base URL.
type ResourceRequest struct {
	Name  ResourceName      `json:"name" yaml:"name"`
	Path  string            `json:"path" yaml:"path"`
	Query map[string]string `json:"query,omitempty" yaml:"query,omitempty"`
	Shape Shape             `json:"shape" yaml:"shape"`
}

// ResourceResult is produced only by a fully successful retrieval.
type ResourceResult struct {
	Name        ResourceName    `json:"name"`
	Payload     json.RawMessage `json:"payload"`
	ElapsedMS   float64         `json:"elapsed_ms"`
	RetrievedAt time.Time       `json:"retrieved_at"`
}

// AggregateResult combines one successful retrieval per requested resource.
type AggregateResult struct {
	Mode      Mode                            `json:"mode"`
	Results   map[ResourceName]ResourceResult `json:"results"`
	ElapsedMS float64                         `json:"elapsed_ms"`
}
