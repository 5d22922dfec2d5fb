package appmode

import (
	"context"
	"net/http"
	"time"

	"github.com/UnendingLoop/minigrep/internal/processor"
	"github.com/UnendingLoop/minigrep/internal/transport"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const shutdownTimeout = 5 * time.Second

// RunNode serves search tasks on addr until ctx is done.
func RunNode(ctx context.Context, stop context.CancelFunc, addr string, cacheSize int) error {
	log := zerolog.Ctx(ctx)

	proc, err := processor.NewCached(cacheSize)
	if err != nil {
		return errors.Errorf("creating result cache: %w", err)
	}

	// получить экземпляр сервера
	srv := transport.NewNodeServer(addr, proc, *log)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("node running")
		err := srv.ListenAndServe()
		switch {
		case err == nil, errors.Is(err, http.ErrServerClosed):
			log.Info().Msg("server gracefully stopping...")
			serveErr <- nil
		default:
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()

	// закрытие всех соединений сервера
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Errorf("failed to shutdown node %q correctly: %w", addr, err)
	}

	if err := <-serveErr; err != nil {
		return errors.Errorf("node %q stopped: %w", addr, err)
	}
	log.Info().Str("address", addr).Msg("node server is closed")
	return nil
}
