package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-chapterplay/internal/media"
	"github.com/hazadus/go-chapterplay/internal/media/beepaudio"
	"github.com/hazadus/go-chapterplay/internal/player"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [key]",
		Short: "Play a track by its key",
		Long:  `Play a track by its key, e.g. "2-01". Space pauses, h/l seek, q stops.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.playByKey(ctx, args[0])
		},
	}
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Ошибка не критична для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// readKeys читает одиночные символы без ожидания Enter
func readKeys(keys chan<- byte) {
	buffer := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buffer); err != nil {
			return
		}
		keys <- buffer[0]
	}
}

type playResult struct {
	req *player.PlayRequest
	err error
}

// awaitPlay дожидается результата запуска и передает его в results
func awaitPlay(req *player.PlayRequest, results chan<- playResult) {
	if req == nil {
		return
	}
	go func() {
		results <- playResult{req: req, err: <-req.Done}
	}()
}

func (app *Application) playByKey(ctx context.Context, key string) error {
	cat, err := app.loadCatalog(ctx)
	if err != nil {
		return err
	}
	track, err := cat.Lookup(key)
	if err != nil {
		return err
	}

	backend := beepaudio.NewBackend(beepaudio.WithLogger(app.Logger))
	defer backend.Close()

	coord := player.NewCoordinator(backend, app.Config.PlaybackDir(), app.Logger)
	defer coord.Close()

	ctrl, err := coord.Attach(track)
	if err != nil {
		return err
	}

	fmt.Printf("🎵 %s (%s)\n", track.Name(), track.FileLabel())
	fmt.Println("💡 Пробел - пауза, h/l - перемотка, q - выход")

	results := make(chan playResult, 1)
	awaitPlay(ctrl.Play(), results)

	enableRawMode()
	defer disableRawMode()

	keys := make(chan byte)
	go readKeys(keys)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Все изменения состояния происходят в этом цикле
	for {
		select {
		case res := <-results:
			coord.Resolve(res.req, res.err)
			if res.err != nil {
				return fmt.Errorf("не удалось запустить %s: %w", track.Key(), res.err)
			}
			displayProgress(ctrl)

		case ev, ok := <-backend.Events():
			if !ok {
				return nil
			}
			coord.Dispatch(ev)
			if ev.Kind == media.Ended && ev.Source == track.Key() {
				fmt.Println("\n✅ Воспроизведение завершено")
				return nil
			}
			displayProgress(ctrl)

		case char := <-keys:
			switch char {
			case ' ', '\n', '\r':
				awaitPlay(ctrl.TogglePlayback(), results)
			case 'h':
				ctrl.SeekBy(-app.Config.SeekStep)
			case 'l':
				ctrl.SeekBy(app.Config.SeekStep)
			case 'q':
				fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
				ctrl.Pause()
				return nil
			}
			displayProgress(ctrl)

		case <-interrupt:
			fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
			ctrl.Pause()
			return nil

		case <-ctx.Done():
			fmt.Println("\n🚫 Операция отменена")
			ctrl.Pause()
			return ctx.Err()
		}
	}
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(ctrl *player.Controller) {
	d := ctrl.Display()
	state := ctrl.State()

	statusIcon := "▶️ "
	switch state.Status {
	case player.Starting:
		statusIcon = "⏱️ "
	case player.Paused, player.Idle:
		statusIcon = "⏸️ "
	case player.Ended:
		statusIcon = "⏹️ "
	}

	fmt.Printf("\r\033[K%s %s / %s | %.1f%% | %s",
		statusIcon, d.Elapsed, d.Total, d.Percent*100, state.Status)
}
