// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// helloserver answers every request with a greeting. The port comes from
// --port or PORT.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/yeetrun/ycmd/pkg/ycmd"
)

func main() {
	cmd := ycmd.New("helloserver").SetDescription("Serve a greeting over HTTP")
	cmd.Option("-p, --port <port>", "Port to listen on").SetParser(ycmd.ParsePort).SetEnv("PORT").SetDefault(ycmd.Port(8080))
	cmd.Option("--expose-env", "Serve the environment at /env")
	cmd.SetAction(func(ctx context.Context, r *ycmd.Result) error {
		exposeEnv := r.Bool("expose-env")
		port, _ := r.Value("port")
		addr := fmt.Sprintf(":%d", port.(ycmd.Port))
		r.Command().Logger().Info("listening", "addr", addr)
		return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if exposeEnv && req.URL.Path == "/env" {
				fmt.Fprintln(w, strings.Join(os.Environ(), "\n"))
				return
			}
			fmt.Fprintln(w, "Hello, world!")
		}))
	})
	cmd.Main(context.Background())
}
