// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/worldstore/felt"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "world.leveldb"
	defaultManifest         = "classes.json"

	defaultLogDirectory = "log"
	defaultLogFile      = "world.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultEventBuffer = 100
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		"main":            "info",
		"world":           "info",
		"events":          "info",
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the LevelDB store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the decoded configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Manifest      string               `gluamapper:"manifest" json:"manifest"`
	Owner         string               `gluamapper:"owner" json:"owner"`
	WorldClass    string               `gluamapper:"world_class" json:"world_class"`
	EventBuffer   int                  `gluamapper:"event_buffer" json:"event_buffer"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`

	owner      felt.Felt
	worldClass felt.Felt
}

// GetConfiguration - read decode and verify the configuration
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Manifest:      defaultManifest,
		EventBuffer:   defaultEventBuffer,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if "" != options.Owner {
		options.owner, err = felt.FromHex(options.Owner)
		if nil != err {
			return nil, fmt.Errorf("owner: %q: %s", options.Owner, err)
		}
	}
	if "" != options.WorldClass {
		options.worldClass, err = felt.FromHex(options.WorldClass)
		if nil != err {
			return nil, fmt.Errorf("world_class: %q: %s", options.WorldClass, err)
		}
	}
	if options.EventBuffer < 1 {
		options.EventBuffer = defaultEventBuffer
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Manifest,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names i.e. must not contain path seperator
	// then add the correct directory prefix, file item is first and corresponding directory is second
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, &options.Logging.Directory},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			*f[0] = ensureAbsolute(*f[1], *f[0])
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []*string{&options.Database.Directory, &options.Logging.Directory} {
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// OwnerAddress - the account that spawns and initially owns the world
func (c *Configuration) OwnerAddress() felt.Felt {
	return c.owner
}

// WorldClassHash - the class hash the world is spawned with
func (c *Configuration) WorldClassHash() felt.Felt {
	return c.worldClass
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
