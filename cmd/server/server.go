package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zucenko/spinlines/config"
	"github.com/zucenko/spinlines/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, port string
	cmd := &cobra.Command{
		Use:          "spinlines-server",
		Short:        "Hosts spinlines puzzles over websocket, one puzzle per connection",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log.SetLevel(cfg.Level())
			if port == "" {
				port = os.Getenv("PORT")
			}
			if port == "" {
				port = cfg.Server.Port
				log.Printf("Defaulting to port %s", port)
			}
			return serve(cmd.Context(), cfg, port)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config")
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides $PORT and the config")
	return cmd
}

func serve(parent context.Context, cfg config.Config, port string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	s := Server{GameServer: server.NewGameServer(cfg, log.StandardLogger())}
	go s.GameServer.Loop(ctx)
	s.routes()

	srv := &http.Server{Addr: ":" + port, Handler: s.router}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	log.Infof("listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
