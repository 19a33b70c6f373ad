// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/worldstore/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour1  = "\033[1;36m"
	keyColour2  = "\033[1;31m"
	valColour1  = "\033[1;33m"
	valColour2  = "\033[1;34m"
	delColour1  = "\033[1;35m"
	delColour2  = "\033[0;35m"
	nodelColour = "\033[1;32m"
	endColour   = "\033[0m"
)

type colours struct {
	key1, key2, val1, val2, del1, del2, nodel, end string
}

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "delete", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "early", HasArg: getoptions.NO_ARGUMENT, Short: 'e'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {
		poolType := reflect.TypeOf(storage.Pools{})
		fmt.Printf(" tags:\n")
		for i := 0; i < poolType.NumField(); i += 1 {
			fieldInfo := poolType.Field(i)
			fmt.Printf("       %s → %s\n", fieldInfo.Tag.Get("prefix"), fieldInfo.Name)
		}
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--count=N] [--delete] --file=DIR tag [--list] [key-prefix]", program)
	}

	// stop if prefix no longer matches
	earlyStop := len(options["early"]) > 0

	ascii := len(options["ascii"]) > 0
	deleting := len(options["delete"]) > 0
	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	tag := arguments[0]
	if verbose {
		fmt.Printf("read tag: %s from file: %q\n", tag, filename)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "world-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	db, err := storage.Open(filename, !deleting)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer db.Close()

	p := findPool(&db.Pool, tag)
	if nil == p {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, tag)
	}

	cursor := p.NewFetchCursor()
	if len(prefix) > 0 {
		cursor.Seek(prefix)
	}

	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	c := colours{}
	if len(options["colour"]) > 0 {
		c = colours{
			key1:  keyColour1,
			key2:  keyColour2,
			val1:  valColour1,
			val2:  valColour2,
			del1:  delColour1,
			del2:  delColour2,
			nodel: nodelColour,
			end:   endColour,
		}
	}

	l := len(prefix)

print_loop:
	for i, e := range data {
		if earlyStop && len(e.Key) >= l && !bytes.Equal(prefix, e.Key[:l]) {
			fmt.Printf("*** early stop\n")
			break print_loop
		}

		fmt.Printf("%d: %sKey: %s%x%s\n", i, c.key1, c.key2, e.Key, c.end)
		if ascii {
			hexDump(fmt.Sprintf("%d: %sVal: %s", i, c.val1, c.val2), c.end, e.Value)
		} else {
			fmt.Printf("%d: %sVal: %s%x%s\n", i, c.val1, c.val2, e.Value, c.end)
		}

		if deleting {
			quit, err := confirmDelete(db, p, i, e.Key, c)
			if nil != err {
				exitwithstatus.Message("%s: delete error: %s", program, err)
			}
			if quit {
				fmt.Printf("Terminated\n")
				return
			}
		}
	}
}

// locate a pool by its prefix tag
func findPool(pools *storage.Pools, tag string) *storage.PoolHandle {
	poolType := reflect.TypeOf(*pools)
	poolValue := reflect.ValueOf(pools).Elem()
	for i := 0; i < poolType.NumField(); i += 1 {
		if tag == poolType.Field(i).Tag.Get("prefix") {
			return poolValue.Field(i).Interface().(*storage.PoolHandle)
		}
	}
	return nil
}

// ask before removing a single key; true means stop processing
func confirmDelete(db *storage.Database, p *storage.PoolHandle, i int, key []byte, c colours) (bool, error) {
	for {
		fmt.Printf("%d: %sDelete Key: %s%x%s ? [yNq]: ", i, c.del1, c.del2, key, c.end)

		buffer := make([]byte, 100)
		n, err := os.Stdin.Read(buffer)
		if nil != err {
			return true, err
		}

		switch strings.ToLower(strings.TrimSpace(string(buffer[:n]))) {

		case "y", "yes":
			trx, err := db.Begin()
			if nil != err {
				return true, err
			}
			trx.Delete(p, key)
			if err := trx.Commit(); nil != err {
				return true, err
			}
			fmt.Printf("%d: %s***DELETED: %s%x%s\n", i, c.del1, c.del2, key, c.end)
			return false, nil

		case "", "n", "no":
			fmt.Printf("%d: %sRetain Key: %s%x%s\n", i, c.nodel, c.key2, key, c.end)
			return false, nil

		case "q", "quit", "e", "exit", "x":
			return true, nil

		default:
			fmt.Printf("Please answer yes or no\n")
		}
	}
}

// dump hex data on stdout
func hexDump(prefix string, suffix string, data []byte) {
	address := 0
	const bytesPerLine = 32
	for i := 0; i < len(data); i += bytesPerLine {
		fmt.Printf("%s%04x  ", prefix, address)
		address += bytesPerLine
		for j := 0; j < bytesPerLine; j += 1 {
			if bytesPerLine/2 == j {
				fmt.Printf(" ")
			}
			if i+j < len(data) {
				fmt.Printf("%02x ", data[i+j])
			} else {
				fmt.Printf("   ")
			}
		}
		fmt.Printf(" |")
	ascii_loop:
		for j := 0; j < bytesPerLine; j += 1 {
			if i+j >= len(data) {
				break ascii_loop
			}
			ch := data[i+j]
			if ch < 32 || ch >= 127 {
				ch = '.'
			}
			fmt.Printf("%c", ch)
		}
		fmt.Printf("|%s\n", suffix)
	}
}
