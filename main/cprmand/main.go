// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/platinasystems/cprman/cmd/cprmand"
)

func main() {
	cmd := new(cprmand.Command)
	if err := cmd.Main(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, cmd.String()+": "+err.Error())
		os.Exit(1)
	}
}
