// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cprmand publishes the BCM2835 clock tree to redis and accepts
// rate, parent and state writes over hset.
package cprmand

import (
	"fmt"
	"net/rpc"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/platinasystems/atsock"
	"github.com/platinasystems/cprman/cprman"
	"github.com/platinasystems/cprman/regio"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

const Name = "cprmand"

type Command struct {
	Info
}

type Info struct {
	mutex sync.Mutex
	rpc   *atsock.RpcServer
	pub   *publisher.Publisher
	stop  chan struct{}
	tree  *cprman.Tree
	lasts map[string]string
}

func (*Command) String() string { return Name }

func (*Command) Usage() string {
	return "cprmand [-mock] [-base ADDR] [-aux ADDR] [-osc HZ] [-interval SECONDS]"
}

func (c *Command) Main(argv ...string) error {
	flag, argv := flags.New(argv, "-mock")
	parm, argv := parms.New(argv, "-base", "-aux", "-osc", "-interval",
		"-timeout")
	if len(argv) != 0 {
		return fmt.Errorf("%v: unexpected", argv)
	}

	osc := uint64(19200000)
	if s := parm.ByName["-osc"]; len(s) != 0 {
		var err error
		osc, err = strconv.ParseUint(s, 0, 64)
		if err != nil {
			return fmt.Errorf("-osc %s: %v", s, err)
		}
	}
	base := uint64(cprman.DefaultBase)
	if s := parm.ByName["-base"]; len(s) != 0 {
		var err error
		base, err = strconv.ParseUint(s, 0, 64)
		if err != nil {
			return fmt.Errorf("-base %s: %v", s, err)
		}
	}
	auxBase := uint64(cprman.AuxDefaultBase)
	if s := parm.ByName["-aux"]; len(s) != 0 {
		var err error
		auxBase, err = strconv.ParseUint(s, 0, 64)
		if err != nil {
			return fmt.Errorf("-aux %s: %v", s, err)
		}
	}
	interval := 5 * time.Second
	if s := parm.ByName["-interval"]; len(s) != 0 {
		i, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("-interval %s: %v", s, err)
		}
		interval = time.Duration(i) * time.Second
	}
	var timeout time.Duration
	if s := parm.ByName["-timeout"]; len(s) != 0 {
		i, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("-timeout %s: %v", s, err)
		}
		timeout = time.Duration(i) * time.Millisecond
	}

	var io, auxIo regio.Io
	if flag.ByName["-mock"] {
		io = regio.NewMock()
		auxIo = regio.NewMock()
	} else {
		m, err := regio.Open(base, cprman.BlockSize)
		if err != nil {
			return err
		}
		defer m.Close()
		a, err := regio.Open(auxBase, cprman.AuxBlockSize)
		if err != nil {
			return err
		}
		defer a.Close()
		io, auxIo = m, a
	}

	tree, err := cprman.New(cprman.Config{
		Osc:         osc,
		Cprman:      io,
		Aux:         auxIo,
		WaitTimeout: timeout,
	})
	if err != nil {
		return err
	}
	c.tree = tree

	if err = redis.IsReady(); err != nil {
		return err
	}

	if c.pub, err = publisher.New(); err != nil {
		return err
	}
	defer c.pub.Close()

	if c.rpc, err = atsock.NewRpcServer(Name); err != nil {
		return err
	}
	defer c.rpc.Close()

	rpc.Register(&c.Info)
	if err = redis.Assign(redis.DefaultHash+":cprman.", Name,
		"Info"); err != nil {
		return err
	}

	c.stop = make(chan struct{})
	c.lasts = make(map[string]string)

	c.update()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return nil
		case <-t.C:
			c.update()
		}
	}
}

func (c *Command) Close() error {
	close(c.stop)
	return nil
}

func (c *Command) update() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, name := range c.tree.Names() {
		rate, err := c.tree.Rate(name)
		if err != nil {
			continue
		}
		c.publish("cprman."+name+".rate.hz",
			strconv.FormatUint(rate, 10))

		enabled, _ := c.tree.IsEnabled(name)
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		c.publish("cprman."+name+".state", state)

		if parent, _ := c.tree.Parent(name); len(parent) != 0 {
			c.publish("cprman."+name+".parent", parent)
		}
	}
}

func (i *Info) publish(key, value string) {
	if i.lasts[key] != value {
		i.pub.Print(key, ": ", value)
		i.lasts[key] = value
	}
}

// Hset handles writes of cprman.<clock>.rate.hz, cprman.<clock>.parent and
// cprman.<clock>.state.
func (i *Info) Hset(a args.Hset, r *reply.Hset) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	field := strings.TrimPrefix(a.Field, "cprman.")
	value := string(a.Value)

	switch {
	case strings.HasSuffix(field, ".rate.hz"):
		name := strings.TrimSuffix(field, ".rate.hz")
		rate, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return err
		}
		if err = i.tree.SetRate(name, rate); err != nil {
			return err
		}
		achieved, err := i.tree.Rate(name)
		if err != nil {
			return err
		}
		log.Print("notice: ", name, " rate set to ", achieved)
		i.publish("cprman."+name+".rate.hz",
			strconv.FormatUint(achieved, 10))
	case strings.HasSuffix(field, ".parent"):
		name := strings.TrimSuffix(field, ".parent")
		if err := i.tree.SetParent(name, value); err != nil {
			return err
		}
		log.Print("notice: ", name, " reparented to ", value)
		i.publish("cprman."+name+".parent", value)
	case strings.HasSuffix(field, ".state"):
		name := strings.TrimSuffix(field, ".state")
		switch value {
		case "enabled":
			if err := i.tree.Prepare(name); err != nil {
				return err
			}
		case "disabled":
			if err := i.tree.Unprepare(name); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: not enabled or disabled", value)
		}
		// Publish what the tree reports, not what was asked; non-stop
		// clocks accept a disable and stay enabled.
		enabled, err := i.tree.IsEnabled(name)
		if err != nil {
			return err
		}
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		log.Print("notice: ", name, " ", state)
		i.publish("cprman."+name+".state", state)
	default:
		return fmt.Errorf("cannot hset: %s", a.Field)
	}
	*r = 1
	return nil
}
