package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the drill in a browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		secure, _ := cmd.Flags().GetBool("secure-cookie")
		idle, _ := cmd.Flags().GetDuration("session-idle")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := openDeps(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		srv, err := web.New(web.Options{
			Bank:         bankCache(cmd),
			Sessions:     session.NewStore(idle),
			Dispatcher:   d.dispatcher,
			SecureCookie: secure,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "drillpad listening on %s\n", addr)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8501", "Address to listen on")
	serveCmd.Flags().Bool("secure-cookie", false, "Mark the session cookie Secure (when served over TLS)")
	serveCmd.Flags().Duration("session-idle", 12*time.Hour, "Drop browser sessions idle for longer than this")
}
