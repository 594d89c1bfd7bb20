package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"sahayak/loader/internal"
	"sahayak/store"
	"sahayak/types"
)

type Service struct {
	logger *slog.Logger
	store  store.DBStorer
	loader *internal.PackLoader
}

func New(storer store.DBStorer, cfg types.Config) *Service {
	return &Service{
		logger: slog.Default(),
		store:  storer,
		loader: internal.NewPackLoader(cfg),
	}
}

func (s *Service) Stop() {
	s.logger.Info("Loader Service stopped")
}

func (s *Service) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileChan := make(chan string, 10)
	itemChan := make(chan *types.DownloadItem)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(fileChan)
		s.loader.WatchFile(ctx, fileChan)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.loader.ProcessFile(ctx, fileChan, itemChan)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.DownloadSave(ctx, itemChan)
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)

	<-sigch
	log.Println("Received shutdown signal, shutting down gracefully...")

	cancel()

	signal.Stop(sigch)
	close(sigch)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("All goroutines stopped successfully")
	case <-shutdownCtx.Done():
		log.Println("Timeout waiting for goroutines to stop, forcing shutdown...")
	}

	s.Stop()
	log.Println("Service stopped successfully")
}

// DownloadSave records every ingested pack in the download queue.
func (s *Service) DownloadSave(ctx context.Context, itemChan <-chan *types.DownloadItem) {
	for {
		item, ok := <-itemChan
		if !ok {
			return
		}

		if err := s.store.UpsertDownload(ctx, *item); err != nil {
			log.Printf("[LOADER] failed to record download %s: %v", item.ID, err)
			continue
		}

		log.Printf("[LOADER] recorded download %s (%s)", item.ID, item.Status)
	}
}
