// Package processor runs a search task through the line matcher and signs the result with a checksum
package processor

import (
	"context"
	"strconv"

	"github.com/UnendingLoop/minigrep/internal/matcher"
	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

type Processor struct{}

func (p Processor) ProcessTask(ctx context.Context, task *model.SearchTask) *model.SearchResult {
	result := model.SearchResult{
		TaskID: task.TaskID,
		Lines:  []string{},
	}

	if ctx.Err() == nil {
		result.Lines = matcher.MatchLines(task.Query, task.Corpus, task.CaseSensitive)
	}
	// задача могла быть отменена во время поиска - тогда результат пустой
	if ctx.Err() != nil {
		result.Lines = []string{}
	}

	result.HashSumm = Checksum(result.Lines)
	return &result
}

// Checksum hashes result lines in order; nodes agreeing on a result produce the same sum.
func Checksum(lines []string) uint64 {
	hs := xxhash.New()
	for _, s := range lines {
		_, _ = hs.WriteString(s)
		_, _ = hs.WriteString("\n") // разделитель, чтобы ["ab"] и ["a","b"] не совпадали
	}
	return hs.Sum64()
}

// CachedProcessor remembers results of already processed tasks.
type CachedProcessor struct {
	next  Processor
	cache *lru.Cache[uint64, []string]
}

func NewCached(size int) (*CachedProcessor, error) {
	cache, err := lru.New[uint64, []string](size)
	if err != nil {
		return nil, err
	}
	return &CachedProcessor{cache: cache}, nil
}

func (c *CachedProcessor) ProcessTask(ctx context.Context, task *model.SearchTask) *model.SearchResult {
	key := taskKey(task)
	if lines, ok := c.cache.Get(key); ok {
		return &model.SearchResult{
			TaskID:   task.TaskID,
			Lines:    lines,
			HashSumm: Checksum(lines),
		}
	}

	res := c.next.ProcessTask(ctx, task)
	if ctx.Err() == nil {
		c.cache.Add(key, res.Lines)
	}
	return res
}

func (c *CachedProcessor) Len() int {
	return c.cache.Len()
}

func taskKey(task *model.SearchTask) uint64 {
	hs := xxhash.New()
	_, _ = hs.WriteString(strconv.FormatBool(task.CaseSensitive))
	_, _ = hs.WriteString(strconv.Itoa(len(task.Query)))
	_, _ = hs.WriteString(":")
	_, _ = hs.WriteString(task.Query)
	_, _ = hs.WriteString(task.Corpus)
	return hs.Sum64()
}
