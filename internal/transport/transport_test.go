package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/processor"
	"github.com/UnendingLoop/minigrep/internal/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct {
	returnResultFn func(ctx context.Context, task *model.SearchTask) *model.SearchResult
}

func (m mockProcessor) ProcessTask(ctx context.Context, task *model.SearchTask) *model.SearchResult {
	return m.returnResultFn(ctx, task)
}

func TestHealthCheck(t *testing.T) {
	srv := transport.NewNodeServer("", mockProcessor{}, zerolog.Nop())
	require.NotNil(t, srv, "NewNodeServer returned nil-server")

	req := httptest.NewRequest(http.MethodGet, transport.PingPath, nil)
	w := httptest.NewRecorder()

	srv.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestReceiveTask(t *testing.T) {
	cases := []struct {
		name       string
		mockProcFn *mockProcessor
		ttask      *model.SearchTask
		wantCode   int
	}{
		{
			name: "Positive - successful 200OK",
			mockProcFn: &mockProcessor{
				returnResultFn: func(ctx context.Context, task *model.SearchTask) *model.SearchResult {
					return &model.SearchResult{TaskID: task.TaskID}
				},
			},
			ttask: &model.SearchTask{
				TaskID: "taskID",
				Query:  "pattern",
			},
			wantCode: http.StatusOK,
		},
		{
			name: "Negative - empty task 400BadRequest",
			mockProcFn: &mockProcessor{
				returnResultFn: func(ctx context.Context, task *model.SearchTask) *model.SearchResult {
					return &model.SearchResult{}
				},
			},
			ttask:    nil,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			srv := transport.NewNodeServer("", tt.mockProcFn, zerolog.Nop())
			require.NotNil(t, srv, "NewNodeServer returned nil-server")
			raw, _ := json.Marshal(tt.ttask)
			body := bytes.NewReader(raw)

			req := httptest.NewRequest(http.MethodPost, transport.SearchPath, body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			srv.Handler.ServeHTTP(w, req)

			require.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestReceiveTaskWithProcessor(t *testing.T) {
	srv := transport.NewNodeServer("", processor.Processor{}, zerolog.Nop())

	raw, err := json.Marshal(model.SearchTask{
		TaskID: "t1",
		Query:  "rust",
		Corpus: "Rust:\nsafe, fast, productive.\nPick three.\nTrust me.",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, transport.SearchPath, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "t1", res.TaskID)
	require.Equal(t, []string{"Rust:", "Trust me."}, res.Lines)
	require.Equal(t, processor.Checksum(res.Lines), res.HashSumm)
}
