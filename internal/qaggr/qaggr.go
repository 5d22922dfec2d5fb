// Package qaggr - provides method to aggregate all results received from search nodes and reach quorum
package qaggr

import (
	"context"

	"github.com/UnendingLoop/minigrep/internal/model"
	"gitlab.com/tozd/go/errors"
)

type taskTotals struct {
	task  *model.MasterTask
	votes int
	data  []string
}

// CollectAggregateResults reads node results until every task has a checksum voted by quorum nodes.
// Results are returned in the order of tasks.
func CollectAggregateResults(ctx context.Context, ch <-chan model.SearchResult, tasks []*model.MasterTask, quorum int) ([][]string, error) {
	quorumResults := make(map[string][]string, len(tasks))

	// готовим мапу задач [TaskID]:*MasterTask чтобы по полученному результату быстро обновлять resMap
	tasksMap := make(map[string]*model.MasterTask, len(tasks))
	for i := range tasks {
		tasksMap[tasks[i].Task.TaskID] = tasks[i]
	}

	// мапа мап для подсчета голосов за каждую хеш-сумму по каждому заданию
	resMap := make(map[string]map[uint64]*taskTotals)

	for len(quorumResults) < len(tasksMap) {
		select {
		case <-ctx.Done():
			return nil, errors.Errorf("result collector: %w (%d of %d tasks done)", model.ErrNoQuorum, len(quorumResults), len(tasksMap))
		case newRes, ok := <-ch:
			if !ok {
				return nil, errors.Errorf("results channel closed: %w (%d of %d tasks done)", model.ErrNoQuorum, len(quorumResults), len(tasksMap))
			}

			// неизвестная задача или задача, по которой кворум уже есть
			task, taskExists := tasksMap[newRes.TaskID]
			if !taskExists {
				continue
			}
			if _, done := quorumResults[newRes.TaskID]; done {
				continue
			}

			submap, ok := resMap[newRes.TaskID]
			if !ok {
				submap = make(map[uint64]*taskTotals)
				resMap[newRes.TaskID] = submap
			}

			record, ok := submap[newRes.HashSumm]
			if !ok {
				record = &taskTotals{task: task, data: newRes.Lines}
				submap[newRes.HashSumm] = record
			}
			record.votes++

			if record.votes >= quorum { // кворум достигнут - отменяем оставшиеся http-запросы по этой задаче
				if record.task.CancelCTX != nil {
					record.task.CancelCTX()
				}
				quorumResults[newRes.TaskID] = record.data
				delete(resMap, newRes.TaskID)
			}
		}
	}

	// формируем результат в порядке заданий
	resStrings := make([][]string, 0, len(tasks))
	for _, v := range tasks {
		resStrings = append(resStrings, quorumResults[v.Task.TaskID])
	}
	return resStrings, nil
}
