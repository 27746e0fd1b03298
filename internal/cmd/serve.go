package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"skillchess/internal/config"
	"skillchess/internal/server/game"
	httpserver "skillchess/internal/server/http"
	"skillchess/internal/skillchess"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve runs the HTTP game server. Two players join the
			same room through /api/join, the first one plays white,
			and every move is pushed to the room over /ws.

			Flags override the values from the config file, which is
			looked up as skillchess/config.yaml in the XDG config
			directories unless --config names one.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			open, _ := cmd.Flags().GetBool("open")
			return serve(cmd.Context(), cfg, open)
		},
	}

	cmd.Flags().String("addr", "", "Listen address")
	cmd.Flags().String("web-dir", "", "Directory with the web client")
	cmd.Flags().Bool("revival", false, "Enable the revival rule")
	cmd.Flags().Bool("open", false, "Open the web client in a browser")
	return cmd
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("web-dir") {
		cfg.WebDir, _ = flags.GetString("web-dir")
	}
	if flags.Changed("revival") {
		cfg.Revival, _ = flags.GetBool("revival")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, cfg.ConfigureLogging()
}

func serve(ctx context.Context, cfg config.Config, open bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	games := game.NewManager(skillchess.Options{Revival: cfg.Revival})
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpserver.NewServer(games, httpserver.Options{
			WebDir:       cfg.WebDir,
			MobileWebDir: cfg.MobileWebDir,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithFields(logrus.Fields{
			"addr":    cfg.Addr,
			"web":     cfg.WebDir,
			"revival": cfg.Revival,
		}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if open {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser(browserURL(cfg.Addr))
		}()
	}
	return g.Wait()
}

func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logrus.WithError(err).Debug("could not open browser")
	}
}
