// Package model contains data structures for launch parameters, cluster settings and node DTOs
package model

import (
	"context"
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// IgnoreCaseEnv - наличие переменной (любое значение, даже пустое) включает поиск без учета регистра
const IgnoreCaseEnv = "IGNORE_CASE"

var (
	ErrNotEnoughArgs  = errors.New("not enough arguments")
	ErrBadQuorum      = errors.New("incorrect quorum")
	ErrNoQuorum       = errors.New("exceeded or cancelled without reaching quorum")
	ErrNotEnoughNodes = errors.New("not enough healthy nodes")
)

type ColorMode string

const (
	ColorNever  = ColorMode("never")
	ColorAlways = ColorMode("always")
	ColorAuto   = ColorMode("auto")
)

// Config - параметры одного запуска поиска
type Config struct {
	Query         string
	FilePath      string
	CaseSensitive bool
	Color         ColorMode
	Cluster
}

// Cluster - список узлов и кворум для распределенного режима
type Cluster struct {
	Nodes  NodesList `yaml:"nodes"`
	Quorum int       `yaml:"quorum"`
}

// Distributed reports whether the search should be sent to nodes.
func (c Cluster) Distributed() bool {
	return len(c.Nodes) > 0
}

// NodesList - для чтения списка узлов из повторяющегося флага --node
type NodesList []string

func (n *NodesList) String() string {
	return fmt.Sprint(*n)
}

// Set сразу избавляется от пустых и дублирующихся адресов
func (n *NodesList) Set(value string) error {
	if value == "" {
		return nil
	}
	for _, v := range *n {
		if v == value {
			return nil
		}
	}
	*n = append(*n, value)
	return nil
}

func (n *NodesList) Type() string {
	return "address"
}

type MasterTask struct {
	Task      SearchTask
	CTX       context.Context
	CancelCTX context.CancelFunc
}

type SearchTask struct {
	TaskID        string `json:"tid" binding:"required"`
	Query         string `json:"query"`
	CaseSensitive bool   `json:"case_sensitive"`
	Corpus        string `json:"corpus"`
	FileName      string `json:"file_name,omitempty"`
}

type SearchResult struct {
	TaskID   string   `json:"tid" binding:"required"`
	HashSumm uint64   `json:"hash"`
	Lines    []string `json:"lines"`
}
