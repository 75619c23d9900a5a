// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// helloworld greets someone on an interval.
//
//	helloworld --count 3 --every 500ms Gopher
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/yeetrun/ycmd/pkg/ycmd"
)

func main() {
	cmd := ycmd.New("helloworld").SetDescription("Print a greeting on an interval")
	cmd.Argument("[name]", "Who to greet").SetDefault("World")
	cmd.Option("-n, --count <n>", "Stop after n greetings, 0 for never").SetParser(ycmd.ParseInt).SetDefault(0)
	cmd.Option("--every <interval>", "Time between greetings").SetParser(ycmd.ParseDuration).SetDefault(2 * time.Second)
	cmd.SetAction(func(ctx context.Context, r *ycmd.Result) error {
		every, _ := r.Value("every")
		for i := 0; r.Int("count") == 0 || i < r.Int("count"); i++ {
			if i > 0 {
				time.Sleep(every.(time.Duration))
			}
			fmt.Printf("Hello, %s!\n", r.ArgString(0))
		}
		return nil
	})
	cmd.Main(context.Background())
}
