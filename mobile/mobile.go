package mobile

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"skillchess/internal/server/game"
	httpserver "skillchess/internal/server/http"
	"skillchess/internal/skillchess"
)

// StartServer starts the local game server for the app's web view.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// revival: enables the revival rule for every room
func StartServer(webDir string, port string, revival bool) {
	games := game.NewManager(skillchess.Options{Revival: revival})
	h := httpserver.NewServer(games, httpserver.Options{WebDir: webDir, MobileWebDir: webDir})

	// Run in background so it doesn't block the Android UI thread
	go func() {
		addr := "127.0.0.1:" + port
		logrus.WithField("addr", addr).Info("mobile server listening")
		if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("mobile server stopped")
		}
	}()
}
