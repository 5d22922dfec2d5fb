package appmode

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/qaggr"
	"github.com/UnendingLoop/minigrep/internal/reader"
	"github.com/UnendingLoop/minigrep/internal/transport"
	"github.com/docker/distribution/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

const (
	healthTimeout = 5 * time.Second
	taskTimeout   = 1 * time.Minute
)

// RunMaster reads the corpus locally, sends the search to every node and prints
// the result that at least cfg.Quorum nodes agreed on.
func RunMaster(ctx context.Context, cfg *model.Config, stdin io.Reader, out io.Writer) error {
	log := zerolog.Ctx(ctx)

	// файл читается целиком до обращения к узлам - при ошибке ввода вывода нет
	corpus, err := reader.ReadCorpus(stdin, cfg.FilePath)
	if err != nil {
		return err
	}

	client := &http.Client{}

	// проверить пингом, что хотя бы кворум узлов доступен
	if err := checkNodesHealth(ctx, client, cfg.Nodes, cfg.Quorum); err != nil {
		return errors.Errorf("failed to start search: %w", err)
	}

	tCTX, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()
	tasks := []*model.MasterTask{{
		Task: model.SearchTask{
			TaskID:        uuid.Generate().String(),
			Query:         cfg.Query,
			CaseSensitive: cfg.CaseSensitive,
			Corpus:        corpus,
			FileName:      cfg.FilePath,
		},
		CTX:       tCTX,
		CancelCTX: cancel,
	}}
	log.Debug().Str("task", tasks[0].Task.TaskID).Int("nodes", len(cfg.Nodes)).Int("quorum", cfg.Quorum).Msg("sending task")

	result, err := processTasks(ctx, client, cfg.Nodes, tasks, cfg.Quorum)
	if err != nil {
		return errors.Errorf("failed to search: %w", err)
	}

	p := newPrinter(out, cfg)
	for _, lines := range result {
		if err := p.printLines(lines); err != nil {
			return err
		}
	}
	return nil
}

func checkNodesHealth(ctx context.Context, client *http.Client, nodes []string, quorumN int) error {
	log := zerolog.Ctx(ctx)
	var goodNodes atomic.Int64

	rCtx, cancel := context.WithTimeout(ctx, healthTimeout) // 5 секунд на опрос всех узлов
	defer cancel()

	// отказ одного узла не должен отменять опрос остальных - горутины ошибок не возвращают
	g, gCtx := errgroup.WithContext(rCtx)
	for _, addr := range nodes {
		g.Go(func() error {
			req, err := http.NewRequestWithContext(gCtx, http.MethodGet, addr+transport.PingPath, nil)
			if err != nil {
				log.Warn().Err(err).Str("node", addr).Msg("bad node address")
				return nil
			}

			resp, err := client.Do(req)
			if err != nil {
				log.Warn().Err(err).Str("node", addr).Msg("node is not reachable")
				return nil
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				goodNodes.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	res := goodNodes.Load()
	if res < int64(quorumN) {
		return errors.Errorf("%w: only %d node(s) are OK to continue, while quorum should be %d", model.ErrNotEnoughNodes, res, quorumN)
	}
	return nil
}

func processTasks(ctx context.Context, client *http.Client, nodes []string, tasks []*model.MasterTask, quorumN int) ([][]string, error) {
	// буфер на все ответы - отправители не блокируются после выхода сборщика
	resCollect := make(chan model.SearchResult, len(nodes)*len(tasks))

	wg := sync.WaitGroup{}
	for _, task := range tasks {
		raw, err := json.Marshal(task.Task)
		if err != nil {
			return nil, errors.Errorf("failed to marshal task: %w", err)
		}

		for _, nodeAddr := range nodes {
			wg.Go(func() {
				sendTaskToNode(task.CTX, client, nodeAddr, raw, resCollect)
			})
		}
	}

	// все узлы ответили (или отвалились) - сборщик больше ничего не дождется
	go func() {
		wg.Wait()
		close(resCollect)
	}()

	cCtx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()
	result, err := qaggr.CollectAggregateResults(cCtx, resCollect, tasks, quorumN)

	// отменяем оставшиеся запросы к узлам, которые еще не ответили
	for _, task := range tasks {
		task.CancelCTX()
	}
	wg.Wait()

	return result, err
}

func sendTaskToNode(ctx context.Context, client *http.Client, na string, raw []byte, ch chan<- model.SearchResult) {
	log := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, na+transport.SearchPath, bytes.NewReader(raw))
	if err != nil {
		log.Warn().Err(err).Str("node", na).Msg("failed to build task request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Str("node", na).Msg("failed to send task")
		}
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("node", na).Msg("node rejected task")
		return
	}

	var result model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Warn().Err(err).Str("node", na).Msg("failed to unmarshal result")
		return
	}
	ch <- result
}
