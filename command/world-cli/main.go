// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/configuration"
	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/manifest"
	"github.com/bitmark-inc/worldstore/messagebus"
	"github.com/bitmark-inc/worldstore/storage"
	"github.com/bitmark-inc/worldstore/world"
)

type metadata struct {
	config  *configuration.Configuration
	db      *storage.Database
	host    *contract.MemoryHost
	classes *manifest.Manifest
	bus     *messagebus.Broadcast
	log     *events.Log
	queue   <-chan messagebus.Message
	world   *world.World
	caller  felt.Felt
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "world-cli"
	app.Usage = "maintain a world registry"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "world.conf",
			Usage: " configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "caller, a",
			Value: "",
			Usage: " act as contract address `ADDRESS` [default: configured owner]",
		},
	}

	namespaceFlag := cli.StringFlag{
		Name:  "namespace, n",
		Value: "",
		Usage: "*namespace `NAME`",
	}
	classFlag := cli.StringFlag{
		Name:  "class, k",
		Value: "",
		Usage: "*class hash or manifest name `CLASS`",
	}
	resourceFlag := cli.StringFlag{
		Name:  "resource, r",
		Value: "",
		Usage: "*resource selector or namespace-name tag `RESOURCE`",
	}
	modelFlag := cli.StringFlag{
		Name:  "model, m",
		Value: "",
		Usage: "*model selector or namespace-name tag `MODEL`",
	}
	indexFlags := []cli.Flag{
		modelFlag,
		cli.StringFlag{
			Name:  "keys, K",
			Value: "",
			Usage: "+comma separated key values `FELTS`",
		},
		cli.StringFlag{
			Name:  "id, i",
			Value: "",
			Usage: "+entity id `FELT`",
		},
		cli.StringFlag{
			Name:  "member, M",
			Value: "",
			Usage: " single member `NAME` (with --id)",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "init",
			Usage:     "spawn the world in an empty database",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "class, k",
					Value: "",
					Usage: " world class `CLASS` [default: configured or manifest world class]",
				},
			},
			Action: runInit,
		},
		{
			Name:      "namespace",
			Usage:     "register a namespace",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{namespaceFlag},
			Action:    runNamespace,
		},
		{
			Name:      "model",
			Usage:     "register a model",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{namespaceFlag, classFlag},
			Action:    runRegister(manifest.Model),
		},
		{
			Name:      "event",
			Usage:     "register an event",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{namespaceFlag, classFlag},
			Action:    runRegister(manifest.Event),
		},
		{
			Name:      "contract",
			Usage:     "deploy and register a contract",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				namespaceFlag,
				classFlag,
				cli.StringFlag{
					Name:  "salt, s",
					Value: "0",
					Usage: " deployment salt `FELT`",
				},
			},
			Action: runRegister(manifest.Contract),
		},
		{
			Name:      "library",
			Usage:     "register a library",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				namespaceFlag,
				classFlag,
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*library `NAME`",
				},
				cli.StringFlag{
					Name:  "library-version, L",
					Value: "",
					Usage: "*library `VERSION`",
				},
			},
			Action: runLibrary,
		},
		{
			Name:      "upgrade",
			Usage:     "upgrade a model, event or contract to a new class",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				namespaceFlag,
				classFlag,
				cli.StringFlag{
					Name:  "kind, t",
					Value: "model",
					Usage: " resource kind `KIND` [model|event|contract]",
				},
			},
			Action: runUpgrade,
		},
		{
			Name:      "init-contract",
			Usage:     "run the initializer of a registered contract",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				resourceFlag,
				cli.StringFlag{
					Name:  "calldata, d",
					Value: "",
					Usage: " comma separated arguments `FELTS`",
				},
			},
			Action: runInitContract,
		},
		{
			Name:      "grant",
			Usage:     "grant a role on a resource",
			ArgsUsage: "\n   (* = required)",
			Flags:     roleFlags(resourceFlag),
			Action:    runPermission(true),
		},
		{
			Name:      "revoke",
			Usage:     "revoke a role on a resource",
			ArgsUsage: "\n   (* = required)",
			Flags:     roleFlags(resourceFlag),
			Action:    runPermission(false),
		},
		{
			Name:      "resource",
			Usage:     "show a registered resource",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{resourceFlag},
			Action:    runResource,
		},
		{
			Name:      "set",
			Usage:     "write an entity record",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: append(indexFlags, cli.StringFlag{
				Name:  "values, V",
				Value: "",
				Usage: "*comma separated values `FELTS`",
			}),
			Action: runSetEntity,
		},
		{
			Name:      "get",
			Usage:     "read an entity record",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags:     indexFlags,
			Action:    runGetEntity,
		},
		{
			Name:      "delete",
			Usage:     "delete an entity record",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags:     indexFlags,
			Action:    runDeleteEntity,
		},
		{
			Name:      "events",
			Usage:     "list committed events",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first sequence number `COUNT`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:      "classes",
			Usage:     "list the declared classes",
			ArgsUsage: " ",
			Action:    runClasses,
		},
	}

	// read the configuration and open the world
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		switch command {
		case "", "help", "h":
			return nil
		}

		file := c.GlobalString("config")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.GetConfiguration(file, nil)
		if nil != err {
			return err
		}

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}

		m := &metadata{
			config:  config,
			caller:  config.OwnerAddress(),
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		if s := c.GlobalString("caller"); "" != s {
			m.caller, err = felt.FromHex(s)
			if nil != err {
				return fmt.Errorf("caller: %q: %s", s, err)
			}
		}

		return m.open("init" == command)
	}

	// record host deployments and close everything
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		defer logger.Finalise()
		return m.close()
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func roleFlags(resourceFlag cli.Flag) []cli.Flag {
	return []cli.Flag{
		resourceFlag,
		cli.StringFlag{
			Name:  "actor, t",
			Value: "",
			Usage: "*contract address `ADDRESS`",
		},
		cli.StringFlag{
			Name:  "role, o",
			Value: "writer",
			Usage: " `ROLE` [owner|writer]",
		},
	}
}
