// Package transport provides a new server-entity(by ginext) for node-mode operability with handlers to serve endpoints
package transport

import (
	"context"
	"net/http"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"
)

const (
	PingPath   = "/ping"
	SearchPath = "/search"
)

type TaskProcessor interface {
	ProcessTask(ctx context.Context, task *model.SearchTask) *model.SearchResult
}

type handlers struct {
	proc TaskProcessor
	log  zerolog.Logger
}

func NewNodeServer(addr string, proc TaskProcessor, log zerolog.Logger) *http.Server {
	h := handlers{proc: proc, log: log}

	engine := ginext.New("release")
	engine.GET(PingPath, h.HealthCheck)
	engine.POST(SearchPath, h.ReceiveTask)

	return &http.Server{
		Addr:    addr,
		Handler: engine,
	}
}

func (h handlers) HealthCheck(ctx *ginext.Context) {
	h.log.Debug().Str("remote", ctx.ClientIP()).Msg("received a healthcheck request")
	ctx.Status(http.StatusOK)
}

func (h handlers) ReceiveTask(ctx *ginext.Context) {
	var task model.SearchTask

	if err := ctx.ShouldBindJSON(&task); err != nil {
		h.log.Warn().Err(err).Msg("failed to parse task from body")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse task from body: " + err.Error()})
		return
	}

	h.log.Info().Str("task", task.TaskID).Int("corpus_bytes", len(task.Corpus)).Msg("received task")

	res := h.proc.ProcessTask(ctx.Request.Context(), &task)
	h.log.Debug().Str("task", res.TaskID).Int("lines", len(res.Lines)).Uint64("hash", res.HashSumm).Msg("calculated result")

	ctx.JSON(http.StatusOK, res)
}
