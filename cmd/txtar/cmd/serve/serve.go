/*
 * Copyright 2024 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/nlnwa/gotxtar/pkg/index"
	"github.com/nlnwa/gotxtar/pkg/loader"
	"github.com/nlnwa/gotxtar/pkg/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [dir]...",
		Short: "Start a web server serving the files of indexed txtar archives",
		Long:  ``,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Increase GOMAXPROCS as recommended by badger
			// https://github.com/dgraph-io/badger#are-there-any-go-specific-settings-that-i-should-use
			runtime.GOMAXPROCS(128)
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				viper.Set("archive-dir", args)
			}
			return runE()
		},
	}

	cmd.Flags().IntP("port", "p", 9999, "Server listening port")
	cmd.Flags().StringP("path-prefix", "", "/", "Path prefix")
	cmd.Flags().IntP("watch-depth", "d", 4, "The maximum depth when indexing archives")
	cmd.Flags().BoolP("auto-index", "", true, "Enable automatic indexing")
	cmd.Flags().StringP("index-dir", "", ".", "Index directory")
	cmd.Flags().StringSliceP("archive-dir", "", []string{"."}, "List of directories containing archives")
	cmd.Flags().StringP("suffix", "", ".txtar", "File name suffix of archives")

	return cmd
}

func runE() error {
	opts := index.DefaultOptions().
		WithDir(viper.GetString("index-dir")).
		WithSuffix(viper.GetString("suffix"))

	db, err := index.NewIndexDb(opts)
	if err != nil {
		return err
	}
	defer db.Close()

	if viper.GetBool("auto-index") {
		log.Infof("Starting autoindexer")
		autoindexer, err := index.NewAutoIndexer(db, viper.GetStringSlice("archive-dir"), viper.GetInt("watch-depth"))
		if err != nil {
			return err
		}
		defer autoindexer.Shutdown()
	}

	loggingMw := func(h http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(os.Stdout, h)
	}
	l := &loader.Loader{
		Resolver: loader.DbResolver{Db: db},
		Loader:   &loader.FileStorageLoader{},
	}

	var handler = server.Handler(db, l, loggingMw)
	if prefix := strings.TrimSuffix(viper.GetString("path-prefix"), "/"); prefix != "" {
		r := mux.NewRouter()
		r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, handler))
		handler = r
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%v", viper.GetInt("port")),
		Handler: handler,
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	log.Infof("Starting web server at http://localhost:%v", viper.GetInt("port"))
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
